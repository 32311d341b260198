package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
	"github.com/Dosada05/tennis-league/scoring"
	"github.com/Dosada05/tennis-league/storage"
)

// --- Общие хелперы ---

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intPtr(v int) *int { return &v }

// populateUserDetailsFunc прячет хеш пароля и подставляет публичный URL фото.
func populateUserDetailsFunc(user *models.User, uploader storage.FileUploader) {
	if user == nil {
		return
	}
	user.PasswordHash = ""
	if user.ProfilePhotoKey != nil && *user.ProfilePhotoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*user.ProfilePhotoKey)
		if url != "" {
			user.ProfilePhotoURL = &url
		}
	}
}

func populateSponsorLogoURLFunc(sponsor *models.Sponsor, uploader storage.FileUploader) {
	if sponsor != nil && sponsor.LogoKey != "" && uploader != nil {
		sponsor.LogoURL = uploader.GetPublicURL(sponsor.LogoKey)
	}
}

// matchResultFromModel converts a stored match plus its score row into the
// event form the standings aggregator consumes. Matches without a score stay
// out of the history entirely.
func matchResultFromModel(m *models.Match) (scoring.MatchResult, bool) {
	if m.Score == nil {
		return scoring.MatchResult{}, false
	}
	s := m.Score

	result := scoring.MatchResult{
		MatchID: m.ID,
		Side1:   scoring.TeamRef{PlayerID: m.Player1ID},
		Side2:   scoring.TeamRef{PlayerID: m.Player2ID},
		Doubles: m.IsDoubles,
	}
	if m.Player1PartnerID != nil {
		result.Side1.PartnerID = *m.Player1PartnerID
	}
	if m.Player2PartnerID != nil {
		result.Side2.PartnerID = *m.Player2PartnerID
	}

	result.Approved = s.ApprovalStatus == models.ApprovalApproved

	if s.IsWalkover() {
		result.Status = scoring.StatusWalkover
		if result.Side1.Contains(*s.WalkoverPlayer) {
			result.DefaultingSide = scoring.Side1
			result.Winner = scoring.Side2
		} else {
			result.DefaultingSide = scoring.Side2
			result.Winner = scoring.Side1
		}
		return result, true
	}

	result.Status = scoring.StatusCompleted
	switch {
	case s.WinnerID == scoring.DrawParticipantID:
		result.Draw = true
	case result.Side1.Contains(s.WinnerID):
		result.Winner = scoring.Side1
	case result.Side2.Contains(s.WinnerID):
		result.Winner = scoring.Side2
	}

	if s.Player1Set1 != nil && s.Player2Set1 != nil && s.Player1Set2 != nil && s.Player2Set2 != nil {
		result.Sets = &scoring.SetScores{
			P1Set1: *s.Player1Set1,
			P2Set1: *s.Player2Set1,
			P1Set2: *s.Player1Set2,
			P2Set2: *s.Player2Set2,
		}
	}
	if s.SuperTiebreakP1 != nil && s.SuperTiebreakP2 != nil {
		result.Tiebreak = &scoring.TiebreakScore{P1: *s.SuperTiebreakP1, P2: *s.SuperTiebreakP2}
	}
	return result, true
}

// mapUserRepoError переводит ошибки репозитория в сервисные.
func mapUserRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, repositories.ErrUserUsernameConflict):
		return ErrUsernameConflict
	default:
		return err
	}
}

// GetExtensionFromContentType maps an image content type to a file extension
// for storage keys.
func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	case "image/svg+xml":
		return ".svg", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && strings.HasPrefix(parts[0], "image") && parts[1] != "" {
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("could not determine file extension from content type: %q", contentType)
	}
}
