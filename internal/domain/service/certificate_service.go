package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	MinLevel = 1
	MaxLevel = 20
)

// levelTitles maps level-1 to the certificate title for that level.
var levelTitles = [20]string{
	"Novice",
	"Beginner",
	"Apprentice",
	"Student",
	"Learner",
	"Explorer",
	"Conversationalist",
	"Communicator",
	"Intermediate",
	"Practitioner",
	"Advanced",
	"Fluent Speaker",
	"Expert",
	"Specialist",
	"Wordsmith",
	"Linguist",
	"Polyglot",
	"Scholar",
	"Master",
	"Grandmaster",
}

// Certificate is a rendered level certificate ready to stream.
type Certificate struct {
	Content  []byte
	Filename string
	Level    int
	Title    string
}

// CertificateService renders level certificates as PDF documents. It is
// stateless; the only failure mode is the renderer's own output error.
type CertificateService struct{}

// NewCertificateService creates a new certificate service
func NewCertificateService() *CertificateService {
	return &CertificateService{}
}

// ClampLevel clamps a requested level into [MinLevel, MaxLevel]
func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// TitleForLevel returns the title for a level, clamping out-of-range input
func TitleForLevel(level int) string {
	return levelTitles[ClampLevel(level)-1]
}

// Render produces a landscape certificate for (name, level). The level is
// clamped before lookup so the filename never encodes an out-of-range value.
func (s *CertificateService) Render(name string, level int) (*Certificate, error) {
	clamped := ClampLevel(level)
	title := levelTitles[clamped-1]

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 34)
	pdf.CellFormat(0, 30, "Lingopass", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 22)
	pdf.CellFormat(0, 20, tr(fmt.Sprintf("Certificate: Level %d — %s", clamped, title)), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "I", 26)
	pdf.CellFormat(0, 24, tr(fmt.Sprintf("Awarded to %s", name)), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 16, fmt.Sprintf("Issued on %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render certificate: %w", err)
	}

	return &Certificate{
		Content:  buf.Bytes(),
		Filename: fmt.Sprintf("certificate_level_%d.pdf", clamped),
		Level:    clamped,
		Title:    title,
	}, nil
}
