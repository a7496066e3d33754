package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct{ in, want string }{
		{"ada@example.com", "ada-example-com"},
		{"Nguyễn Nhật Ánh", "nguyen-nhat-anh"},
		{"Đặng  --  Văn", "dang-van"},
		{"  Already-a-slug  ", "already-a-slug"},
		{"José.Álvarez+cv@x.io", "jose-alvarez-cv-x-io"},
		{"@@", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GenerateSlug(tc.in), tc.in)
	}
}
