package services

import (
	"errors"
	"fmt"
)

// Базовые виды ошибок. Конкретные ошибки ниже оборачивают один из них,
// поэтому вызывающий код может проверять и вид (errors.Is(err, ErrValidation)),
// и конкретную причину (errors.Is(err, ErrEventRankCollision)).
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("requested resource not found")
	ErrIntegrity  = errors.New("integrity violation")
)

// Ошибки валидации записи. Все проверки выполняются до любой мутации.
var (
	ErrEventNoResults           = fmt.Errorf("%w: event needs at least one participating house", ErrValidation)
	ErrEventRankCollision       = fmt.Errorf("%w: rank collision", ErrValidation)
	ErrEventRankOutOfRange      = fmt.Errorf("%w: rank out of range", ErrValidation)
	ErrEventNegativePoints      = fmt.Errorf("%w: points earned must not be negative", ErrValidation)
	ErrEventDateRequired        = fmt.Errorf("%w: event date is required", ErrValidation)
	ErrEventDescriptionRequired = fmt.Errorf("%w: event description is required", ErrValidation)
	ErrHouseNameRequired        = fmt.Errorf("%w: house name is required", ErrValidation)
	ErrStudentNameRequired      = fmt.Errorf("%w: student first and last name are required", ErrValidation)
	ErrClassYearNameRequired    = fmt.Errorf("%w: class year name is required", ErrValidation)
)

// Ссылки на несуществующие сущности.
var (
	ErrHouseNotFound     = fmt.Errorf("%w: house", ErrNotFound)
	ErrClassYearNotFound = fmt.Errorf("%w: class year", ErrNotFound)
	ErrEventNotFound     = fmt.Errorf("%w: event", ErrNotFound)
	ErrStudentNotFound   = fmt.Errorf("%w: student", ErrNotFound)
)

// Нарушения целостности, поднятые из хранилища.
var (
	ErrHouseInUse        = fmt.Errorf("%w: house is referenced by students or results", ErrIntegrity)
	ErrClassYearInUse    = fmt.Errorf("%w: class year is referenced by students", ErrIntegrity)
	ErrHouseNameConflict = fmt.Errorf("%w: house name already exists", ErrIntegrity)
	ErrClassYearConflict = fmt.Errorf("%w: class year already exists", ErrIntegrity)
)

// ErrCrestStorageUnavailable возвращается, когда загрузчик гербов не сконфигурирован.
var ErrCrestStorageUnavailable = errors.New("crest storage is not configured")
