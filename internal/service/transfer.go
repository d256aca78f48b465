package service

import (
	"wordbook/internal/csv"
	"wordbook/internal/domain"
	"wordbook/internal/repository"
)

// TransferService moves whole wordbooks in and out as CSV
type TransferService struct {
	entryRepo repository.EntryRepository
}

// NewTransferService creates a new transfer service
func NewTransferService(entryRepo repository.EntryRepository) *TransferService {
	return &TransferService{entryRepo: entryRepo}
}

// Export renders the user's whole wordbook as a CSV document
func (s *TransferService) Export(userID int64) (string, error) {
	entries, err := s.entryRepo.ListEntries(userID)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", ErrNothingToExport
	}

	return csv.Encode(entriesToRecords(entries)), nil
}

// Import replaces the user's wordbook with the entries decoded from blob
// and returns how many were imported
func (s *TransferService) Import(userID int64, blob string) (int, error) {
	records := csv.Decode(blob)
	if len(records) == 0 {
		return 0, ErrEmptyImport
	}

	pairs := make([]domain.EntryPair, 0, len(records))
	for _, r := range records {
		pairs = append(pairs, domain.EntryPair{Word: r.Word, Definition: r.Definition})
	}

	if err := s.entryRepo.ReplaceEntries(userID, pairs); err != nil {
		return 0, err
	}

	return len(pairs), nil
}

func entriesToRecords(entries []domain.Entry) []csv.Record {
	records := make([]csv.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, csv.Record{Word: e.Word, Definition: e.Definition})
	}
	return records
}
