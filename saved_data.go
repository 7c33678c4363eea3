// saved_data.go - Persisted settings and EEPROM record

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

package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/golang/glog"
)

const (
	MAIN_SAVED_DATA_VERSION = 1
	GAME_SAVED_DATA_VERSION = 1
	SAVED_DATA_VERSION      = MAIN_SAVED_DATA_VERSION<<16 | GAME_SAVED_DATA_VERSION
)

// SavedData is the fixed size record kept between runs. It is stored
// little-endian, fields in declaration order.
type SavedData struct {
	Version    uint32
	Controller uint32
	Width      uint32
	Height     uint32
	Format     uint32
	Windowed   uint32
	EEPROM     [EEPROM_SLOTS]uint16
}

// SavedDataSize is the encoded size of SavedData.
var SavedDataSize = binary.Size(SavedData{})

// DecodeSavedData parses a record. A short record or a version mismatch
// yields a zeroed record and ok=false.
func DecodeSavedData(data []byte) (saved SavedData, ok bool) {
	if len(data) < SavedDataSize {
		return SavedData{}, false
	}
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &saved); err != nil {
		return SavedData{}, false
	}
	if saved.Version != SAVED_DATA_VERSION {
		return SavedData{}, false
	}
	return saved, true
}

// Encode serializes the record with the current version stamped in.
func (s *SavedData) Encode() []byte {
	s.Version = SAVED_DATA_VERSION
	var buf bytes.Buffer
	buf.Grow(SavedDataSize)
	// Writes to a bytes.Buffer of a fixed size struct cannot fail.
	_ = binary.Write(&buf, binary.LittleEndian, s)
	return buf.Bytes()
}

// LoadSavedData reads path. A missing or unusable file starts from a
// zeroed record; only I/O failures are errors.
func LoadSavedData(path string) (*SavedData, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		glog.Infof("no saved data at %s, starting fresh", path)
		return &SavedData{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open saved data: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(SavedDataSize)))
	if err != nil {
		return nil, fmt.Errorf("read saved data: %w", err)
	}
	saved, ok := DecodeSavedData(data)
	if !ok {
		glog.Warningf("saved data %s is stale or short (%d bytes), resetting", path, len(data))
	} else {
		glog.Infof("loaded saved data from %s", path)
	}
	return &saved, nil
}

// ApplyDefaults fills in the display settings of a fresh record.
func (s *SavedData) ApplyDefaults() {
	if s.Width == 0 || s.Height == 0 {
		s.Width = GAME_WIDTH
		s.Height = GAME_HEIGHT
		s.Windowed = 1
	}
}

// Save writes the record to path.
func (s *SavedData) Save(path string) error {
	if err := os.WriteFile(path, s.Encode(), 0o644); err != nil {
		return fmt.Errorf("write saved data: %w", err)
	}
	glog.Infof("saved data written to %s", path)
	return nil
}
