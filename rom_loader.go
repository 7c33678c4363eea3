// rom_loader.go - ROM archive loader

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
rom_loader.go - ROM Archive Loader

Every ROM a profile expects is located in the archive's central directory
by CRC32, not by name, so renamed dumps still load. Members are stored or
deflated; each is decompressed on its own goroutine, its length checked
against the profile and its CRC32 recomputed over the decompressed bytes.
Any missing or mismatched ROM fails the whole load.
*/

package main

import (
	"archive/zip"
	"context"
	"fmt"
	"hash/crc32"
	"io"
	"runtime"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// LoadError describes a ROM that could not be loaded.
type LoadError struct {
	ROM     string
	CRC     uint32
	Details string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ROM %s (CRC %08X): %s: %v", e.ROM, e.CRC, e.Details, e.Err)
	}
	return fmt.Sprintf("ROM %s (CRC %08X): %s", e.ROM, e.CRC, e.Details)
}

func (e *LoadError) Unwrap() error { return e.Err }

// RomSet holds the loaded images grouped by role, each in profile order.
type RomSet struct {
	Program  [][]byte
	Audio    []byte
	Geometry [][]byte
	TexData  [][]byte
	TexMask  [][]byte
}

// LoadRomSet reads every ROM of profile from the zip archive at path.
func LoadRomSet(ctx context.Context, path string, profile *GameProfile) (*RomSet, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, &LoadError{ROM: path, Details: "cannot open archive", Err: err}
	}
	defer archive.Close()

	images, err := loadEntries(ctx, &archive.Reader, profile.ROMs)
	if err != nil {
		return nil, err
	}

	set := &RomSet{}
	for i, rom := range profile.ROMs {
		switch rom.Role {
		case ROM_PROGRAM:
			set.Program = append(set.Program, images[i])
		case ROM_AUDIO:
			set.Audio = images[i]
		case ROM_GEOMETRY:
			set.Geometry = append(set.Geometry, images[i])
		case ROM_TEXTURE_DATA:
			set.TexData = append(set.TexData, images[i])
		case ROM_TEXTURE_MASK:
			set.TexMask = append(set.TexMask, images[i])
		}
	}
	glog.Infof("loaded %d ROMs for %s from %s", len(profile.ROMs), profile.Title, path)
	return set, nil
}

// loadEntries resolves and decompresses entries concurrently. The result
// is indexed like entries.
func loadEntries(ctx context.Context, archive *zip.Reader, entries []ROMEntry) ([][]byte, error) {
	byCRC := make(map[uint32]*zip.File, len(archive.File))
	for _, f := range archive.File {
		byCRC[f.CRC32] = f
	}

	files := make([]*zip.File, len(entries))
	for i, rom := range entries {
		f, ok := byCRC[rom.CRC]
		if !ok {
			return nil, &LoadError{ROM: rom.Name, CRC: rom.CRC, Details: "not found in archive"}
		}
		if f.UncompressedSize64 != uint64(rom.Length) {
			return nil, &LoadError{
				ROM:     rom.Name,
				CRC:     rom.CRC,
				Details: fmt.Sprintf("length %d, expected %d", f.UncompressedSize64, rom.Length),
			}
		}
		files[i] = f
	}

	images := make([][]byte, len(entries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := readEntry(files[i], entries[i])
			if err != nil {
				return err
			}
			images[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func readEntry(f *zip.File, rom ROMEntry) ([]byte, error) {
	glog.V(1).Infof("Loading ROM %08X (%s) compressed=%d data=%d", rom.CRC, f.Name, f.CompressedSize64, f.UncompressedSize64)
	if f.Method != zip.Store && f.Method != zip.Deflate {
		return nil, &LoadError{ROM: rom.Name, CRC: rom.CRC, Details: fmt.Sprintf("invalid compression type %d", f.Method)}
	}
	rc, err := f.Open()
	if err != nil {
		return nil, &LoadError{ROM: rom.Name, CRC: rom.CRC, Details: "cannot open member", Err: err}
	}
	defer rc.Close()

	data := make([]byte, rom.Length)
	if _, err := io.ReadFull(rc, data); err != nil {
		return nil, &LoadError{ROM: rom.Name, CRC: rom.CRC, Details: fmt.Sprintf("error reading %d bytes", rom.Length), Err: err}
	}
	if actual := crc32.ChecksumIEEE(data); actual != rom.CRC {
		return nil, &LoadError{
			ROM:     rom.Name,
			CRC:     rom.CRC,
			Details: fmt.Sprintf("CRC of uncompressed data (%08X) does not match, archive is likely corrupt", actual),
		}
	}
	return data, nil
}
