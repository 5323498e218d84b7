package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"rentdesk/internal/domain"
	"rentdesk/internal/logger"
	"rentdesk/internal/store"
)

type securityService struct {
	docs store.DocumentStore
	log  *slog.Logger
}

func NewSecurityService(docs store.DocumentStore) SecurityService {
	return &securityService{docs: docs, log: logger.WithService("security")}
}

func (s *securityService) GetSettings(ctx context.Context) (*domain.SecuritySettings, error) {
	var settings domain.SecuritySettings
	if err := s.docs.Get(ctx, store.KeyAppPassword, &settings.Password, domain.DefaultPassword); err != nil {
		return nil, fmt.Errorf("failed to load password: %w", err)
	}
	if err := s.docs.Get(ctx, store.KeySecurityQuestion, &settings.Question, ""); err != nil {
		return nil, fmt.Errorf("failed to load security question: %w", err)
	}
	if err := s.docs.Get(ctx, store.KeySecurityAnswer, &settings.Answer, ""); err != nil {
		return nil, fmt.Errorf("failed to load security answer: %w", err)
	}
	return &settings, nil
}

func (s *securityService) VerifyPassword(ctx context.Context, candidate string) (bool, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return false, err
	}
	return candidate == settings.Password, nil
}

func (s *securityService) UpdateSettings(ctx context.Context, params UpdateSecurityParams) error {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return err
	}

	if params.NewPassword != "" {
		if params.CurrentPassword != settings.Password {
			return domain.ErrWrongPassword
		}
		if err := s.docs.Set(ctx, store.KeyAppPassword, params.NewPassword); err != nil {
			return err
		}
		s.log.Info("Admin password changed")
	}

	if params.Question != nil && params.Answer != nil {
		if *params.Question != "" && *params.Answer == "" {
			return domain.ErrAnswerRequired
		}
		if err := s.docs.Set(ctx, store.KeySecurityQuestion, *params.Question); err != nil {
			return err
		}
		if err := s.docs.Set(ctx, store.KeySecurityAnswer, *params.Answer); err != nil {
			return err
		}
		s.log.Info("Recovery question updated", "has_question", *params.Question != "")
	}

	return nil
}

func (s *securityService) RecoverPassword(ctx context.Context, answer string) (string, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return "", err
	}
	if settings.Question == "" {
		return "", domain.ErrNoRecoveryQuestion
	}
	if !strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(settings.Answer)) {
		s.log.Warn("Password recovery attempt failed")
		return "", domain.ErrRecoveryMismatch
	}
	// Recovery reveals the plaintext password on purpose; see SecuritySettings.
	return settings.Password, nil
}
