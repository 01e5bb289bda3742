package intake

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rhk9003/metaads/internal/config"
	"github.com/rhk9003/metaads/internal/domain"
	models "github.com/rhk9003/metaads/internal/domain/models/intake"
	"github.com/rhk9003/metaads/internal/domain/repositories"
	"github.com/rhk9003/metaads/internal/domain/services"
)

type lookupService struct {
	sheet   repositories.SheetReader
	aliases config.HeaderAliases
	logger  *slog.Logger
}

// NewCaseLookup creates the case lookup service. Header names in the master
// sheet are not a fixed contract; the alias lists tolerate schema drift.
func NewCaseLookup(sheet repositories.SheetReader, aliases config.HeaderAliases, logger *slog.Logger) services.CaseLookup {
	return &lookupService{
		sheet:   sheet,
		aliases: aliases,
		logger:  logger,
	}
}

// LookupCase scans the master sheet for the email and returns the case id.
// Matching is case-insensitive on the trimmed email.
func (s *lookupService) LookupCase(ctx context.Context, email string) (string, error) {
	normalized := models.NormalizeEmail(email)
	if normalized == "" {
		return "", &domain.ValidationError{Message: "email is required"}
	}

	headers, rows, err := s.sheet.Rows(ctx)
	if err != nil {
		return "", err
	}

	emailCol, caseCol, err := matchColumns(headers, s.aliases)
	if err != nil {
		return "", err
	}

	for _, row := range rows {
		if emailCol >= len(row) || caseCol >= len(row) {
			continue
		}
		if models.NormalizeEmail(row[emailCol]) == normalized {
			caseID := strings.TrimSpace(row[caseCol])
			if caseID == "" {
				// A matching row with a blank case cell must not
				// resolve to an empty identifier
				s.logger.Warn("matching row has no case id, skipping", "email", normalized)
				continue
			}
			s.logger.Info("case resolved", "email", normalized, "case_id", caseID)
			return caseID, nil
		}
	}

	return "", &domain.NotFoundError{Message: fmt.Sprintf("no case found for %s", normalized)}
}

// ValidateHeaders checks the live sheet has a recognizable email column and
// case-id column, failing fast with a precise diagnostic instead of
// silently picking a wrong column at lookup time.
func (s *lookupService) ValidateHeaders(ctx context.Context) error {
	headers, _, err := s.sheet.Rows(ctx)
	if err != nil {
		return err
	}
	_, _, err = matchColumns(headers, s.aliases)
	return err
}

// matchColumns finds the email and case-id column indexes. A header matches
// a logical field when it contains any of the field's aliases,
// case-insensitive; the first matching header (left to right) wins.
func matchColumns(headers []string, aliases config.HeaderAliases) (emailCol, caseCol int, err error) {
	emailCol = findColumn(headers, aliases.Email)
	caseCol = findColumn(headers, aliases.Case)

	if emailCol < 0 || caseCol < 0 {
		missing := make([]string, 0, 2)
		if emailCol < 0 {
			missing = append(missing, fmt.Sprintf("email (aliases %v)", aliases.Email))
		}
		if caseCol < 0 {
			missing = append(missing, fmt.Sprintf("case id (aliases %v)", aliases.Case))
		}
		return -1, -1, &domain.SetupError{
			Message: fmt.Sprintf("master sheet headers %v have no column for: %s",
				headers, strings.Join(missing, "; ")),
		}
	}

	return emailCol, caseCol, nil
}

func findColumn(headers []string, aliases []string) int {
	for i, h := range headers {
		normalized := strings.ToLower(strings.TrimSpace(h))
		for _, alias := range aliases {
			if strings.Contains(normalized, strings.ToLower(alias)) {
				return i
			}
		}
	}
	return -1
}
