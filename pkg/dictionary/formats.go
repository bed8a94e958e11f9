package dictionary

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the supported dictionary sources
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatText                // One word per line, most frequent first
	FormatSnapshot            // msgpack snapshot written by WriteSnapshot
	FormatSQLite              // SQLite db with a words(word) table
)

// ErrUnknownFormat is returned when a file matches no supported format.
var ErrUnknownFormat = errors.New("unknown dictionary format")

// sqliteMagic is the header every SQLite 3 database file starts with.
var sqliteMagic = []byte("SQLite format 3\x00")

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Word List",
		Extensions:  []string{".txt"},
		MinSize:     1,
	},
	FormatSnapshot: {
		Format:      FormatSnapshot,
		Description: "Msgpack Dictionary Snapshot",
		Extensions:  []string{".msgpack", ".bin"},
		MinSize:     2, // map header + at least one byte of content
	},
	FormatSQLite: {
		Format:      FormatSQLite,
		Description: "SQLite Word Table",
		Extensions:  []string{".db", ".sqlite", ".sqlite3"},
		MinSize:     int64(len(sqliteMagic)),
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("%w: %v", ErrUnknownFormat, expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	switch expectedFormat {
	case FormatSnapshot:
		return validateSnapshotFormat(filename)
	case FormatSQLite:
		return validateSQLiteFormat(filename)
	case FormatText:
		return validateTextFormat(filename)
	}
	return nil
}

// readHeader reads up to n leading bytes of filename.
func readHeader(filename string, n int) ([]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	return buf[:read], nil
}

// validateSnapshotFormat checks that the file starts with a msgpack map
func validateSnapshotFormat(filename string) error {
	header, err := readHeader(filename, 1)
	if err != nil {
		return err
	}
	b := header[0]
	if (b&0xf0) != 0x80 && b != 0xde && b != 0xdf {
		return fmt.Errorf("file %s does not start with a msgpack map (0x%02x)", filename, b)
	}
	log.Debugf("Snapshot file %s validated", filename)
	return nil
}

// validateSQLiteFormat checks the SQLite file header
func validateSQLiteFormat(filename string) error {
	header, err := readHeader(filename, len(sqliteMagic))
	if err != nil {
		return err
	}
	if !bytes.Equal(header, sqliteMagic) {
		return fmt.Errorf("file %s is not a SQLite 3 database", filename)
	}
	log.Debugf("SQLite file %s validated", filename)
	return nil
}

// validateTextFormat validates text dictionary files
func validateTextFormat(filename string) error {
	header, err := readHeader(filename, 1024)
	if err != nil {
		return err
	}
	if bytes.IndexByte(header, 0) >= 0 {
		return fmt.Errorf("file %s looks binary, expected a text word list", filename)
	}
	log.Debugf("Text file %s validated", filename)
	return nil
}

// DetectFileFormat attempts to detect the format of a file
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, format := range []FileFormat{FormatText, FormatSnapshot, FormatSQLite} {
		info := supportedFormats[format]
		for _, e := range info.Extensions {
			if e != ext {
				continue
			}
			if err := ValidateFileFormat(filename, format); err != nil {
				return FormatUnknown, err
			}
			return format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%w: unable to detect format for file %s", ErrUnknownFormat, filename)
}
