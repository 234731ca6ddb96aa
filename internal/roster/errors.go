package roster

import (
	"errors"
	"fmt"

	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/domain"
)

var (
	ErrInsufficientCandidates = errors.New("可用人数不足")
	ErrUnknownPerson          = errors.New("缺少人员属性")
	ErrDuplicateCandidate     = errors.New("空闲名单中存在重复人员")
	ErrDuplicateDay           = errors.New("日期重复")
	ErrDuplicatePerson        = errors.New("人员属性重复")
)

type InsufficientCandidatesError struct {
	Day       string
	Available int
}

func (e *InsufficientCandidatesError) Error() string {
	return fmt.Sprintf("%s 只有 %d 人可用，至少需要 %d 人", e.Day, e.Available, domain.TeamSize)
}

func (e *InsufficientCandidatesError) Unwrap() error {
	return ErrInsufficientCandidates
}

type UnknownPersonError struct {
	Day    string
	Person string
}

func (e *UnknownPersonError) Error() string {
	return fmt.Sprintf("%s 的空闲名单中的 %s 没有对应的属性", e.Day, e.Person)
}

func (e *UnknownPersonError) Unwrap() error {
	return ErrUnknownPerson
}

type DuplicateCandidateError struct {
	Day    string
	Person string
}

func (e *DuplicateCandidateError) Error() string {
	return fmt.Sprintf("%s 的空闲名单中 %s 出现了多次", e.Day, e.Person)
}

func (e *DuplicateCandidateError) Unwrap() error {
	return ErrDuplicateCandidate
}
