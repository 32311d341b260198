package services

import (
	"testing"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchResultFromModelNoScore(t *testing.T) {
	_, ok := matchResultFromModel(&models.Match{ID: 1, Player1ID: 10, Player2ID: 11})
	assert.False(t, ok)
}

func TestMatchResultFromModelCompleted(t *testing.T) {
	match := &models.Match{
		ID:        5,
		Player1ID: 10,
		Player2ID: 11,
		Status:    models.MatchStatusCompleted,
		Score: &models.MatchScore{
			Player1Set1: intPtr(6), Player2Set1: intPtr(3),
			Player1Set2: intPtr(3), Player2Set2: intPtr(6),
			SuperTiebreakP1: intPtr(10), SuperTiebreakP2: intPtr(8),
			WinnerID:       10,
			ApprovalStatus: models.ApprovalApproved,
		},
	}

	result, ok := matchResultFromModel(match)
	require.True(t, ok)

	assert.Equal(t, scoring.StatusCompleted, result.Status)
	assert.True(t, result.Approved)
	assert.Equal(t, scoring.Side1, result.Winner)
	require.NotNil(t, result.Sets)
	assert.Equal(t, scoring.SetScores{P1Set1: 6, P2Set1: 3, P1Set2: 3, P2Set2: 6}, *result.Sets)
	require.NotNil(t, result.Tiebreak)
	assert.Equal(t, scoring.TiebreakScore{P1: 10, P2: 8}, *result.Tiebreak)
	assert.True(t, result.Counts())
}

func TestMatchResultFromModelPendingDoesNotCount(t *testing.T) {
	match := &models.Match{
		ID:        6,
		Player1ID: 10,
		Player2ID: 11,
		Status:    models.MatchStatusCompleted,
		Score: &models.MatchScore{
			Player1Set1: intPtr(6), Player2Set1: intPtr(2),
			Player1Set2: intPtr(6), Player2Set2: intPtr(3),
			WinnerID:       10,
			ApprovalStatus: models.ApprovalPending,
		},
	}

	result, ok := matchResultFromModel(match)
	require.True(t, ok)
	assert.False(t, result.Counts())
}

func TestMatchResultFromModelDraw(t *testing.T) {
	match := &models.Match{
		ID:        7,
		Player1ID: 10,
		Player2ID: 11,
		Status:    models.MatchStatusCompleted,
		Score: &models.MatchScore{
			Player1Set1: intPtr(6), Player2Set1: intPtr(4),
			Player1Set2: intPtr(4), Player2Set2: intPtr(6),
			WinnerID:       scoring.DrawParticipantID,
			ApprovalStatus: models.ApprovalApproved,
		},
	}

	result, ok := matchResultFromModel(match)
	require.True(t, ok)
	assert.True(t, result.Draw)
	assert.Equal(t, scoring.SideNone, result.Winner)
}

func TestMatchResultFromModelWalkover(t *testing.T) {
	match := &models.Match{
		ID:        8,
		Player1ID: 10,
		Player2ID: 11,
		Status:    models.MatchStatusWalkover,
		Score: &models.MatchScore{
			Player1Set1: intPtr(6), Player2Set1: intPtr(0),
			Player1Set2: intPtr(6), Player2Set2: intPtr(0),
			WinnerID:       10,
			WalkoverPlayer: intPtr(11),
			ApprovalStatus: models.ApprovalApproved,
		},
	}

	result, ok := matchResultFromModel(match)
	require.True(t, ok)

	assert.Equal(t, scoring.StatusWalkover, result.Status)
	assert.Equal(t, scoring.Side2, result.DefaultingSide)
	assert.Equal(t, scoring.Side1, result.Winner)
	// Сеты неявки не проходят через калькулятор геймов.
	assert.Nil(t, result.Sets)
	assert.True(t, result.Counts())
}

func TestMatchResultFromModelDoublesPartners(t *testing.T) {
	match := &models.Match{
		ID:               9,
		Player1ID:        10,
		Player2ID:        12,
		Player1PartnerID: intPtr(11),
		Player2PartnerID: intPtr(13),
		IsDoubles:        true,
		Status:           models.MatchStatusCompleted,
		Score: &models.MatchScore{
			Player1Set1: intPtr(6), Player2Set1: intPtr(1),
			Player1Set2: intPtr(6), Player2Set2: intPtr(2),
			WinnerID:       10,
			ApprovalStatus: models.ApprovalApproved,
		},
	}

	result, ok := matchResultFromModel(match)
	require.True(t, ok)

	assert.True(t, result.Doubles)
	assert.Equal(t, scoring.TeamRef{PlayerID: 10, PartnerID: 11}, result.Side1)
	assert.Equal(t, scoring.TeamRef{PlayerID: 12, PartnerID: 13}, result.Side2)
	assert.Equal(t, scoring.Side1, result.Winner)
}
