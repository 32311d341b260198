package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed    = errors.New("validation failed")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrGroupFull           = errors.New("group already has the maximum number of players")
	ErrGroupTooSmall       = errors.New("group needs at least four players to generate a schedule")
	ErrPlayerAlreadyInGroup = errors.New("player is already assigned to a group")
	ErrPlayerNotInGroup    = errors.New("player is not a member of this group")
	ErrPartnerRequired     = errors.New("doubles match requires partners on both sides")
	ErrScheduleExists      = errors.New("group already has generated fixtures")

	// Ошибки жизненного цикла счёта
	ErrMatchAlreadyScored   = errors.New("match already has a submitted score")
	ErrScoreAlreadyApproved = errors.New("score is already approved")
	ErrScoreNotPending      = errors.New("score is not awaiting approval")
	ErrMatchNotScored       = errors.New("match has no submitted score")

	// Пересчёт группы уже идёт в другом запросе
	ErrConcurrentRecalculation = errors.New("recalculation for this group is already in progress")

	// Ошибки конфликтов
	ErrUsernameConflict     = errors.New("username is already taken")
	ErrCategoryNameConflict = errors.New("category with this name and gender already exists")
	ErrGroupNameConflict    = errors.New("group with this name already exists in the category")

	// Ошибки аутентификации и авторизации
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
	ErrNotMatchParticipant  = errors.New("only a participant of the match can perform this action")
	ErrApprovalForbidden    = errors.New("only the opposing side can approve the score")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGroupNotFound    = errors.New("group not found")
	ErrMatchNotFound    = errors.New("match not found")
	ErrSponsorNotFound  = errors.New("sponsor not found")
)
