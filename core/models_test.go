package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentDigest_Deterministic(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog"

	d1 := ContentDigest(text)
	d2 := ContentDigest(text)

	assert.Equal(t, d1, d2)
	assert.NotZero(t, d1)
}

func TestContentDigest_DifferentContent(t *testing.T) {
	d1 := ContentDigest("annual energy report 2023")
	d2 := ContentDigest("annual energy report 2024")

	assert.NotEqual(t, d1, d2)
}

func TestContentDigest_EmptyString(t *testing.T) {
	// Empty content is legal; the digest just has to be stable.
	assert.Equal(t, ContentDigest(""), ContentDigest(""))
}

func TestIDFromFileName(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{"simple pdf", "report.pdf", "report_pdf"},
		{"spaces", "annual report 2023.pdf", "annual_report_2023_pdf"},
		{"forward slash", "audits/site-a.docx", "audits_site-a_docx"},
		{"backslash", `audits\site-a.doc`, "audits_site-a_doc"},
		{"multiple periods", "v1.2.final.pdf", "v1_2_final_pdf"},
		{"no special characters", "report", "report"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IDFromFileName(tt.fileName))
		})
	}
}

func TestIDFromFileName_Stable(t *testing.T) {
	name := "Company Report.Final.pdf"
	assert.Equal(t, IDFromFileName(name), IDFromFileName(name))
}
