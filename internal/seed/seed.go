package seed

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/config"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/domain"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/sheet"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/utils"
)

const (
	AvailabilityFileName = "shift.csv"
	AttributesFileName   = "attribute.csv"
)

type Options struct {
	Dir             string
	Days            int
	People          int
	AvailableRate   float64 // 每个人每天有空的概率
	EmailDomainName string
}

// WriteSampleData 在 opts.Dir 中生成一份随机的空闲表和属性表
func WriteSampleData(marks config.RosterConfig, opts Options) error {
	if opts.Days <= 0 || opts.People < domain.TeamSize {
		return fmt.Errorf("至少需要 1 天和 %d 个人", domain.TeamSize)
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return err
	}

	people := utils.GenerateRandomPeople(opts.People, opts.EmailDomainName)
	days := utils.GenerateDays(opts.Days)
	availability := utils.GenerateRandomAvailability(days, people, opts.AvailableRate)

	for _, day := range days {
		if len(availability[day]) < domain.TeamSize {
			slog.Warn("生成的空闲表中有一天可用人数不足", "day", day, "available", len(availability[day]))
		}
	}

	availabilityPath := filepath.Join(opts.Dir, AvailabilityFileName)
	if err := writeFile(availabilityPath, func(f *os.File) error {
		return sheet.WriteAvailability(f, days, people, availability, marks.AvailableMark)
	}); err != nil {
		return err
	}

	attributesPath := filepath.Join(opts.Dir, AttributesFileName)
	if err := writeFile(attributesPath, func(f *os.File) error {
		return sheet.WriteAttributes(f, people, marks.CommitteeMark)
	}); err != nil {
		return err
	}

	slog.Info("已生成样例数据", "availability", availabilityPath, "attributes", attributesPath, "days", opts.Days, "people", opts.People)
	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
