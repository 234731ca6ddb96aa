package main

import (
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

type mailTemplate struct {
	file    string
	subject string
}

var mailTemplates = map[string]mailTemplate{
	domain.MailTypeRosterAssignment: {
		file:    "roster_assignment_email.html",
		subject: "ECNC 值班系统 - 排班通知",
	},
}

// composer 把队列中的消息转换为邮件，模板只在启动时解析一次
type composer struct {
	from      string
	templates map[string]*template.Template
}

func newComposer(from string, dir string) (*composer, error) {
	c := &composer{
		from:      from,
		templates: make(map[string]*template.Template, len(mailTemplates)),
	}

	for mailType, mt := range mailTemplates {
		tmpl, err := template.ParseFiles(filepath.Join(dir, mt.file))
		if err != nil {
			return nil, err
		}
		c.templates[mailType] = tmpl
	}

	return c, nil
}

func (c *composer) compose(body []byte) (*mail.Msg, error) {
	// 对邮件信息反序列化
	mailMessage := domain.MailMessage{}
	if err := json.Unmarshal(body, &mailMessage); err != nil {
		return nil, fmt.Errorf("邮件信息反序列化失败: %w", err)
	}

	tmpl, ok := c.templates[mailMessage.Type]
	if !ok {
		return nil, fmt.Errorf("不支持的邮件类型 %q", mailMessage.Type)
	}

	m := mail.NewMsg()
	if err := m.From(c.from); err != nil {
		return nil, fmt.Errorf("无法设置邮件发件人: %w", err)
	}
	if err := m.To(mailMessage.To); err != nil {
		return nil, fmt.Errorf("无法设置邮件收件人: %w", err)
	}
	if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
		return nil, fmt.Errorf("无法设置邮件正文: %w", err)
	}
	m.Subject(mailTemplates[mailMessage.Type].subject)

	return m, nil
}
