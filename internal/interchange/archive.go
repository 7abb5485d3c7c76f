package interchange

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
)

const maxArchiveEntrySize = 32 << 20

var zipMagic = []byte("PK\x03\x04")

// FileName returns the archive entry name of a collection.
func FileName(c model.Collection) string {
	return "portfolio_" + string(c) + ".csv"
}

// IsArchive reports whether data starts like a ZIP file.
func IsArchive(data []byte) bool {
	return bytes.HasPrefix(data, zipMagic)
}

// WriteArchive writes every non-empty collection of snap as a CSV entry of
// a ZIP archive. Returns apperrors.ErrEmptyBackup when snap holds nothing.
func WriteArchive(w io.Writer, snap model.Snapshot, modified time.Time) error {
	if snap.IsEmpty() {
		return apperrors.ErrEmptyBackup
	}

	zw := zip.NewWriter(w)
	for _, c := range model.Collections {
		if Count(snap, c) == 0 {
			continue
		}
		f, err := zw.CreateHeader(&zip.FileHeader{
			Name:     FileName(c),
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", c, err)
		}
		if err := Encode(f, snap, c); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

// ReadArchive decodes the collection files found in a ZIP archive, matched
// by base name so archives of a folder restore too. present lists the
// collections that were found, in restore order.
func ReadArchive(data []byte, today string) (snap model.Snapshot, present []model.Collection, err error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return model.Snapshot{}, nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidBackup, err)
	}

	files := make(map[model.Collection]*zip.File)
	for _, f := range zr.File {
		for _, c := range model.Collections {
			if path.Base(f.Name) == FileName(c) {
				files[c] = f
			}
		}
	}

	for _, c := range model.Collections {
		f, ok := files[c]
		if !ok {
			continue
		}

		part, err := decodeEntry(f, c, today)
		if errors.Is(err, apperrors.ErrEmptyImport) {
			continue
		}
		if err != nil {
			return model.Snapshot{}, nil, err
		}

		switch c {
		case model.CollectionSymbols:
			snap.Symbols = part.Symbols
		case model.CollectionOperations:
			snap.Operations = part.Operations
		case model.CollectionAssets:
			snap.Assets = part.Assets
		}
		present = append(present, c)
	}

	if len(present) == 0 {
		return model.Snapshot{}, nil, fmt.Errorf("%w: no collection files found", apperrors.ErrInvalidBackup)
	}
	return snap, present, nil
}

func decodeEntry(f *zip.File, c model.Collection, today string) (model.Snapshot, error) {
	rc, err := f.Open()
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidBackup, err)
	}
	defer rc.Close()

	return Decode(io.LimitReader(rc, maxArchiveEntrySize), c, today)
}
