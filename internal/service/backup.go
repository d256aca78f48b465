package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"wordbook/internal/repository"
)

// BackupService writes periodic CSV snapshots of every wordbook
type BackupService struct {
	userRepo repository.UserRepository
	transfer *TransferService
	dir      string
	logger   *zap.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(userRepo repository.UserRepository, transfer *TransferService, dir string, logger *zap.Logger) *BackupService {
	return &BackupService{
		userRepo: userRepo,
		transfer: transfer,
		dir:      dir,
		logger:   logger,
	}
}

// BackupAll writes one CSV file per authorized user into the backup directory
func (s *BackupService) BackupAll() error {
	s.logger.Info("Starting wordbook backup", zap.String("dir", s.dir))

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error("Failed to create backup directory", zap.Error(err))
		return err
	}

	ids, err := s.userRepo.ListAuthorizedUsers()
	if err != nil {
		s.logger.Error("Failed to list users for backup", zap.Error(err))
		return err
	}

	backed := 0
	for _, id := range ids {
		blob, err := s.transfer.Export(id)
		if errors.Is(err, ErrNothingToExport) {
			continue
		}
		if err != nil {
			s.logger.Error("Failed to export wordbook", zap.Int64("user_id", id), zap.Error(err))
			return err
		}

		name := filepath.Join(s.dir, fmt.Sprintf("wordbook_%d.csv", id))
		if err := os.WriteFile(name, []byte(blob), 0o644); err != nil {
			s.logger.Error("Failed to write backup file", zap.String("file", name), zap.Error(err))
			return err
		}
		backed++
	}

	s.logger.Info("Backup completed", zap.Int("users", backed))
	return nil
}
