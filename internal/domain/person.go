package domain

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Person struct {
	ID        string `json:"id" validate:"required"`
	Gender    Gender `json:"gender" validate:"required"`
	Committee bool   `json:"committee"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"` // 仅用于发送排班通知邮件，可以为空
}

// Attributes 是 person ID 到属性的静态映射，整个排班过程中不可变
type Attributes map[string]Person

func NewAttributes(people []Person) Attributes {
	attrs := make(Attributes, len(people))
	for _, p := range people {
		attrs[p.ID] = p
	}
	return attrs
}
