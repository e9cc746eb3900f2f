package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mogbrew/internal/catalog"
	"github.com/mogbrew/internal/crew"
)

// MaxQuantity 为单次记录允许的最大数量
const MaxQuantity = 24

var (
	// ErrInvalidEntry 在写入参数不合法时返回
	ErrInvalidEntry = errors.New("invalid beer entry")
	// ErrUnknownUser 在用户不属于名单时返回
	ErrUnknownUser = errors.New("unknown crew member")
)

// LogInput 定义一次“喝了 N 瓶”的写入请求
type LogInput struct {
	UserID        string
	BeerName      string
	Brand         string
	ABV           float64
	ContainerType string
	VolumeML      int
	Quantity      int
	Notes         string
}

// EntryValidator 在写入前校验输入，聚合层不做任何校验。
type EntryValidator interface {
	Validate(input LogInput) error
}

// RosterValidator 基于固定名单与容器目录校验输入。
type RosterValidator struct {
	MaxQuantity int
}

// Validate 实现 EntryValidator
func (v RosterValidator) Validate(input LogInput) error {
	if !crew.Valid(input.UserID) {
		return fmt.Errorf("%w: %q", ErrUnknownUser, input.UserID)
	}

	if strings.TrimSpace(input.BeerName) == "" {
		return fmt.Errorf("%w: beer name is required", ErrInvalidEntry)
	}

	if !catalog.ValidContainer(input.ContainerType) {
		return fmt.Errorf("%w: unknown container %q", ErrInvalidEntry, input.ContainerType)
	}

	if input.VolumeML <= 0 {
		return fmt.Errorf("%w: volume must be positive", ErrInvalidEntry)
	}

	if input.ABV < 0 || input.ABV > 100 {
		return fmt.Errorf("%w: abv must be between 0 and 100", ErrInvalidEntry)
	}

	limit := v.MaxQuantity
	if limit <= 0 {
		limit = MaxQuantity
	}
	if input.Quantity <= 0 || input.Quantity > limit {
		return fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidEntry, limit)
	}

	return nil
}
