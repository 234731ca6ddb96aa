package utils

import (
	"fmt"
	"math/rand"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

func GeneratePersonIDFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	id := ""

	for _, p := range pinyinArray {
		length := rand.Intn(len(p)) + 1
		id += p[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		id += string(digits[rand.Intn(len(digits))])
	}

	return id
}

var genders = []domain.Gender{
	domain.GenderMale,
	domain.GenderFemale,
	domain.GenderOther,
}

func GenerateRandomGender() domain.Gender {
	// other 出现的概率较低
	if rand.Intn(10) == 0 {
		return genders[2]
	}
	return genders[rand.Intn(2)]
}

// GenerateRandomPeople 生成 n 个 ID 互不相同的人员，大约四分之一是推进委员
func GenerateRandomPeople(n int, emailDomainName string) []domain.Person {
	people := make([]domain.Person, 0, n)
	seen := make(map[string]bool)

	for len(people) < n {
		id := GeneratePersonIDFromChineseName(GenerateRandomChineseName())
		if seen[id] {
			continue
		}
		seen[id] = true

		p := domain.Person{
			ID:        id,
			Gender:    GenerateRandomGender(),
			Committee: rand.Intn(4) == 0,
		}
		if emailDomainName != "" {
			p.Email = id + "@" + emailDomainName
		}
		people = append(people, p)
	}

	return people
}

func GenerateDays(n int) []string {
	days := make([]string, n)
	for i := range days {
		days[i] = fmt.Sprintf("第%d天", i+1)
	}
	return days
}

// GenerateRandomAvailability 每个人每天以 rate 的概率有空，保持 people 的顺序
func GenerateRandomAvailability(days []string, people []domain.Person, rate float64) map[string][]string {
	availability := make(map[string][]string, len(days))

	for _, day := range days {
		availability[day] = []string{}
		for _, p := range people {
			if rand.Float64() < rate {
				availability[day] = append(availability[day], p.ID)
			}
		}
	}

	return availability
}
