package apperrors

import (
	"errors"
	"fmt"
)

// Domain entity errors represent missing or conflicting records.
var (
	// ErrOperationNotFound indicates that an operation with the given ID does not exist.
	ErrOperationNotFound = errors.New("operation not found")

	// ErrSymbolNotFound indicates that no symbol is configured for the given ticker.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrAssetNotFound indicates that an asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrDuplicateSymbol indicates that a symbol with the same ticker is already configured.
	ErrDuplicateSymbol = errors.New("symbol already exists")
)

// Business logic errors represent validation failures or constraint violations.
var (
	ErrInvalidID          = errors.New("invalid ID")
	ErrInvalidTicker      = errors.New("ticker is required")
	ErrInvalidCurrency    = errors.New("invalid currency parameter")
	ErrInvalidGranularity = errors.New("invalid granularity parameter")
	ErrUnknownCollection  = errors.New("unknown collection")
	ErrInvalidImportMode  = errors.New("invalid import mode")

	// ErrInvalidCSVHeaders indicates that a CSV file lacks a required column.
	ErrInvalidCSVHeaders = errors.New("invalid CSV headers")

	// ErrEmptyImport indicates that an import file contained no records.
	ErrEmptyImport = errors.New("no records to import")

	// ErrEmptyBackup indicates that there is nothing to write into a backup archive.
	ErrEmptyBackup = errors.New("no data to back up")

	// ErrInvalidBackup indicates that a backup archive could not be read.
	ErrInvalidBackup = errors.New("invalid backup archive")
)

// Operation failure errors are the user-facing messages of failed requests.
var (
	ErrFailedToRetrieveOperations = errors.New("failed to retrieve operations")
	ErrFailedToRetrieveOperation  = errors.New("failed to retrieve operation")
	ErrFailedToRetrieveSymbols    = errors.New("failed to retrieve symbols")
	ErrFailedToRetrieveAssets     = errors.New("failed to retrieve assets")
	ErrFailedToCreateSymbol       = errors.New("failed to create symbol")
	ErrFailedToDeleteSymbol       = errors.New("failed to delete symbol")
	ErrFailedToCreateOperation    = errors.New("failed to create operation")
	ErrFailedToUpdateOperation    = errors.New("failed to update operation")
	ErrFailedToDeleteOperation    = errors.New("failed to delete operation")
	ErrFailedToCreateAsset        = errors.New("failed to create asset")
	ErrFailedToDeleteAsset        = errors.New("failed to delete asset")
	ErrFailedToBuildReport        = errors.New("failed to build report")
	ErrFailedToExport             = errors.New("failed to export data")
	ErrFailedToImport             = errors.New("failed to import data")
	ErrFailedToRestore            = errors.New("failed to restore backup")
	ErrFailedToClear              = errors.New("failed to clear data")
)

// ErrMalformedRecord is matched by every MalformedRecordError.
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError describes an imported row that cannot be turned into a
// valid record. Line is 1-based and counts the header row.
type MalformedRecordError struct {
	Collection string
	Line       int
	Field      string
	Reason     string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s line %d: %s: %s", e.Collection, e.Line, e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrMalformedRecord) true for any MalformedRecordError.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}
