package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildContactHTML_EscapesUserText(t *testing.T) {
	html := BuildContactHTML(ContactMessage{
		Name:    `<script>alert("x")</script>`,
		Email:   "a@example.com",
		Message: "Hola & adiós <b>negrita</b>",
	})

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "Hola &amp; adiós")
}

func TestBuildIntakeHTML_OmitsBlankSections(t *testing.T) {
	form := IntakeForm{
		Name:  "Maria",
		Email: "maria@example.com",
		Sections: []Section{
			{
				Title: "Salud",
				Fields: []Field{
					{Label: "Lesiones", Value: "rodilla derecha"},
					{Label: "Medicación", Value: ""},
				},
			},
			{
				Title: "Nutrición",
				Fields: []Field{
					{Label: "Alergias", Value: ""},
				},
			},
		},
	}

	html := BuildIntakeHTML(form)

	assert.Contains(t, html, "Salud")
	assert.Contains(t, html, "rodilla derecha")
	assert.NotContains(t, html, "Medicación")
	// sección entera sin respuestas desaparece
	assert.NotContains(t, html, "Nutrición")
}

func TestBuildPlanHTML_ParagraphsAndEscaping(t *testing.T) {
	html := BuildPlanHTML("Luis", "Primer bloque.\n\nSegundo <b>bloque</b>.")

	assert.Contains(t, html, "Hola Luis")
	assert.Contains(t, html, "<p>Primer bloque.</p>")
	assert.Contains(t, html, "Segundo &lt;b&gt;bloque&lt;/b&gt;.")
	assert.Equal(t, 2, strings.Count(html, "bloque"))
}
