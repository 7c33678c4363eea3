// frame_scheduler.go - Per-frame processor scheduler

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
Buy me a coffee: https://ko-fi.com/intuition/tip

License: GPLv3 or later
*/

/*
frame_scheduler.go - Frame Scheduler

One call to Run drives one video frame. Each processor gets a nominal
budget from its clock and the frame rate; the main processor runs in
slices of 1/100 of its budget and the others follow it:

    main slice          CoreRunner.Execute, net of any abort fudge
    geometry slice      consumed*4+1, clamped to its budget, skipped if halted
    audio deficit       samples due by now minus samples already owed
    audio pump          resumes the DSP when short or a command waits
    sync queue          drained in FIFO order before the next slice

The loop ends once both the main and geometry budgets are spent. When the
main processor finishes first the geometry DSP receives the rest of its
budget in one slice.
*/

package main

const (
	M68K_CLOCK           = 15000000
	GAME_FPS             = 60
	SCHEDULER_SLICES     = 100
	AUDIO_CADENCE_CYCLES = 1024
)

// FrameBudget holds the nominal per-frame allocation of each processor.
type FrameBudget struct {
	MainCycles     int
	GeometryCycles int
	AudioFrames    int
	Slices         int
}

func DefaultFrameBudget() FrameBudget {
	return FrameBudget{
		MainCycles:     M68K_CLOCK / GAME_FPS,
		GeometryCycles: DSP_CLOCK / GAME_FPS,
		AudioFrames:    ADSP_SAMPLE_RATE / GAME_FPS,
		Slices:         SCHEDULER_SLICES,
	}
}

// FrameStats reports what one frame actually ran.
type FrameStats struct {
	MainCycles     int
	GeometryCycles int
	AudioFrames    int
	Slices         int
	SyncRequests   int
	PumpResumes    int
}

// GeometryProcessor is a CpuCore whose reset line can hold it halted.
type GeometryProcessor interface {
	CpuCore
	Halted() bool
}

type FrameScheduler struct {
	budget   FrameBudget
	runner   *CoreRunner
	main     CpuCore
	geometry GeometryProcessor
	pump     *AudioPump
	queue    *SyncQueue
}

func NewFrameScheduler(budget FrameBudget, runner *CoreRunner, main CpuCore, geometry GeometryProcessor, pump *AudioPump, queue *SyncQueue) *FrameScheduler {
	return &FrameScheduler{
		budget:   budget,
		runner:   runner,
		main:     main,
		geometry: geometry,
		pump:     pump,
		queue:    queue,
	}
}

func (s *FrameScheduler) Budget() FrameBudget { return s.budget }

// Run executes one frame worth of slices.
func (s *FrameScheduler) Run() FrameStats {
	b := s.budget
	cyclesMain := b.MainCycles
	cyclesGeometry := b.GeometryCycles
	cyclesAudio := b.AudioFrames
	maxMain := max(b.MainCycles/b.Slices, 1)
	granules := max(b.MainCycles/AUDIO_CADENCE_CYCLES, 1)

	var stats FrameStats
	for cyclesMain > 0 || cyclesGeometry > 0 {
		stats.Slices++

		var slice int
		if cyclesMain > 0 {
			cycles := s.runner.Execute(s.main, min(cyclesMain, maxMain))
			cyclesMain -= cycles
			stats.MainCycles += cycles
			slice = cycles*DSP_SLICE_RATIO + 1
		} else {
			slice = cyclesGeometry
		}

		slice = min(slice, cyclesGeometry)
		if slice > 0 && !s.geometry.Halted() {
			slice = s.runner.Execute(s.geometry, slice)
		}
		cyclesGeometry -= slice
		stats.GeometryCycles += slice

		due := b.AudioFrames - ((b.MainCycles-cyclesMain)/AUDIO_CADENCE_CYCLES)*b.AudioFrames/granules
		if due < cyclesAudio {
			s.pump.AddDeficit(cyclesAudio - due)
			stats.AudioFrames += cyclesAudio - due
			cyclesAudio = due
		}

		if s.pump.Service() != YieldNone {
			stats.PumpResumes++
		}

		stats.SyncRequests += s.queue.Drain()
	}
	return stats
}
