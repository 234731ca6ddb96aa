// Package sheet 读写排班使用的 CSV 表格
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/domain"
)

const (
	DefaultAvailableMark = "○"
	DefaultCommitteeMark = "〇"
)

// Availability 是从空闲表中读出的内容
type Availability struct {
	Days    []string            // 表头中的日期，顺序即排班顺序
	ByDay   map[string][]string // {day: [personID1, personID2, ...]}，按行的顺序排列
	Persons []string            // 表中出现的所有人员，按行的顺序排列
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader
}

// ReadAvailability 读取空闲表：第一行为 "name,<day1>,<day2>,..."，之后每一行为一个人，
// 单元格等于 mark 表示当天有空
func ReadAvailability(r io.Reader, mark string) (*Availability, error) {
	if mark == "" {
		mark = DefaultAvailableMark
	}

	reader := newReader(r)

	// 读取表头
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("空闲表为空")
		}
		return nil, fmt.Errorf("读取空闲表表头失败: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	a := &Availability{
		Days:    make([]string, 0, len(header)-1),
		ByDay:   make(map[string][]string, len(header)-1),
		Persons: make([]string, 0),
	}
	for _, day := range header[1:] {
		day = strings.TrimSpace(day)
		if slices.Contains(a.Days, day) {
			return nil, fmt.Errorf("空闲表表头中的日期 %s 重复", day)
		}
		a.Days = append(a.Days, day)
		a.ByDay[day] = make([]string, 0)
	}

	line := 1
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("读取空闲表失败: %w", err)
		}
		line++

		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		if slices.Contains(a.Persons, name) {
			return nil, fmt.Errorf("空闲表第 %d 行的 %s 重复", line, name)
		}
		a.Persons = append(a.Persons, name)

		for i, day := range a.Days {
			// 缺少的单元格视为没空
			if i+1 < len(row) && strings.TrimSpace(row[i+1]) == mark {
				a.ByDay[day] = append(a.ByDay[day], name)
			}
		}
	}

	return a, nil
}

// ReadAttributes 读取属性表：跳过表头，每一行为 "name,gender,committee[,email]"，
// committee 单元格等于 mark 表示是推进委员
func ReadAttributes(r io.Reader, mark string) ([]domain.Person, error) {
	if mark == "" {
		mark = DefaultCommitteeMark
	}

	reader := newReader(r)

	// 跳过表头
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("属性表为空")
		}
		return nil, fmt.Errorf("读取属性表表头失败: %w", err)
	}

	people := make([]domain.Person, 0)
	seen := make(map[string]bool)
	line := 1
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("读取属性表失败: %w", err)
		}
		line++

		if len(row) < 3 {
			return nil, fmt.Errorf("属性表第 %d 行只有 %d 列，至少需要 3 列", line, len(row))
		}

		p := domain.Person{
			ID:        strings.TrimSpace(row[0]),
			Gender:    domain.Gender(strings.TrimSpace(row[1])),
			Committee: strings.TrimSpace(row[2]) == mark,
		}
		if len(row) > 3 {
			p.Email = strings.TrimSpace(row[3])
		}

		if p.ID == "" {
			continue
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("属性表第 %d 行的 %s 重复", line, p.ID)
		}
		seen[p.ID] = true

		people = append(people, p)
	}

	return people, nil
}

// WriteSchedule 输出排班表，表头为 "day,member1,member2,member3,member4"
func WriteSchedule(w io.Writer, days []domain.DayAssignment) error {
	writer := csv.NewWriter(w)

	header := []string{"day"}
	for i := 1; i <= domain.TeamSize; i++ {
		header = append(header, fmt.Sprintf("member%d", i))
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, item := range days {
		row := append([]string{item.Day}, item.Members...)
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteAvailability 与 ReadAvailability 的格式相同，用于生成样例数据
func WriteAvailability(w io.Writer, days []string, people []domain.Person, byDay map[string][]string, mark string) error {
	if mark == "" {
		mark = DefaultAvailableMark
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(append([]string{"name"}, days...)); err != nil {
		return err
	}

	for _, p := range people {
		row := []string{p.ID}
		for _, day := range days {
			cell := ""
			if slices.Contains(byDay[day], p.ID) {
				cell = mark
			}
			row = append(row, cell)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteAttributes 与 ReadAttributes 的格式相同，用于生成样例数据
func WriteAttributes(w io.Writer, people []domain.Person, mark string) error {
	if mark == "" {
		mark = DefaultCommitteeMark
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"name", "gender", "committee", "email"}); err != nil {
		return err
	}

	for _, p := range people {
		committee := ""
		if p.Committee {
			committee = mark
		}
		if err := writer.Write([]string{p.ID, string(p.Gender), committee, p.Email}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
