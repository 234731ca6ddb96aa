package main

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/quotedprintable"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/domain"
)

func TestComposeRosterAssignment(t *testing.T) {
	c, err := newComposer("noreply@example.com", "../../templates")
	require.NoError(t, err)

	body, err := json.Marshal(domain.MailMessage{
		Type: domain.MailTypeRosterAssignment,
		To:   "a@example.com",
		Data: domain.RosterAssignmentMailData{RosterName: "第一周", PersonID: "zhangsan1", Days: []string{"Mon", "Wed"}},
	})
	require.NoError(t, err)

	m, err := c.compose(body)
	require.NoError(t, err)

	require.Len(t, m.GetTo(), 1)
	assert.Equal(t, "a@example.com", m.GetTo()[0].Address)
	// 主题以 MIME encoded-word 的形式保存
	subject := m.GetGenHeader("Subject")
	require.Len(t, subject, 1)
	decoded, err := new(mime.WordDecoder).DecodeHeader(subject[0])
	require.NoError(t, err)
	assert.Equal(t, "ECNC 值班系统 - 排班通知", decoded)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)

	// 正文使用 quoted-printable 编码，位于第一个空行之后
	raw := buf.Bytes()
	sep := bytes.Index(raw, []byte("\r\n\r\n"))
	require.NotEqual(t, -1, sep)
	rendered, err := io.ReadAll(quotedprintable.NewReader(bytes.NewReader(raw[sep+4:])))
	require.NoError(t, err)

	assert.Contains(t, string(rendered), "zhangsan1")
	assert.Contains(t, string(rendered), "第一周")
	assert.Contains(t, string(rendered), "<li>Mon</li>")
	assert.Contains(t, string(rendered), "<li>Wed</li>")
}

func TestComposeRejectsBadMessages(t *testing.T) {
	c, err := newComposer("noreply@example.com", "../../templates")
	require.NoError(t, err)

	_, err = c.compose([]byte("not json"))
	assert.Error(t, err)

	_, err = c.compose([]byte(`{"type":"reset_password","to":"a@example.com"}`))
	assert.Error(t, err)

	_, err = c.compose([]byte(`{"type":"roster_assignment","to":"not an address"}`))
	assert.Error(t, err)
}
