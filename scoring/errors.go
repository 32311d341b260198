package scoring

import "errors"

// Ошибки валидации входного счёта. Возвращаются синхронно, без ретраев.
var (
	ErrMissingSetScores = errors.New("set scores are required for a normal match")
	ErrNegativeGames    = errors.New("set and tiebreak scores must be non-negative")
	ErrTiebreakTied     = errors.New("super tiebreak cannot end in a tie")
	ErrInvalidSide      = errors.New("side must be side 1 or side 2")
	ErrUnknownScoreKind = errors.New("unknown score input kind")
)

// Ошибки консистентности истории матчей. Агрегация группы прерывается целиком,
// частичные строки не возвращаются.
var (
	ErrParticipantNotInGroup = errors.New("match references a participant outside the group")
	ErrPartnerMissing        = errors.New("doubles match is missing a partner id")
	ErrMatchNotFinished      = errors.New("match result has no terminal status")
)
