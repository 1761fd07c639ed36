package mailer

import (
	"fmt"
	"strings"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/sanitize"
)

// ======================================================
// Shapes
// ======================================================

type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

type Field struct {
	Label string
	Value string
}

type Section struct {
	Title  string
	Fields []Field
}

// IntakeForm es el cuestionario largo, organizado en secciones
// etiquetadas (datos personales, salud, nutrición, entrenamiento,
// objetivos). Los campos que el usuario dejó en blanco se omiten.
type IntakeForm struct {
	Name  string
	Email string
	Phone string

	Sections []Section
}

type LeadProfile struct {
	Name     string
	Email    string
	Phone    string
	Goal     string
	Modality string
}

// ======================================================
// Render
// ======================================================

// Todo texto de usuario pasa por sanitize.EscapeHTML antes de
// interpolarse: un lead no puede inyectar marcado en el buzón del dueño.

func esc(s string) string { return sanitize.EscapeHTML(s) }

func row(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return fmt.Sprintf(
		"<tr><td style=\"padding:4px 12px 4px 0;color:#555;\"><strong>%s</strong></td><td style=\"padding:4px 0;\">%s</td></tr>",
		esc(label), esc(value),
	)
}

func wrap(title, inner string) string {
	var b strings.Builder
	b.WriteString("<div style=\"font-family:Arial,sans-serif;max-width:600px;margin:0 auto;\">")
	b.WriteString(fmt.Sprintf("<h2 style=\"color:#1a7a4a;\">%s</h2>", esc(title)))
	b.WriteString(inner)
	b.WriteString("</div>")
	return b.String()
}

func BuildContactHTML(msg ContactMessage) string {
	var b strings.Builder
	b.WriteString("<table>")
	b.WriteString(row("Nombre", msg.Name))
	b.WriteString(row("Email", msg.Email))
	b.WriteString(row("Teléfono", msg.Phone))
	b.WriteString("</table>")
	b.WriteString(fmt.Sprintf(
		"<p style=\"white-space:pre-line;border-left:3px solid #1a7a4a;padding-left:12px;\">%s</p>",
		esc(msg.Message),
	))
	return wrap("Nuevo mensaje de contacto", b.String())
}

func BuildIntakeHTML(form IntakeForm) string {
	var b strings.Builder

	b.WriteString("<table>")
	b.WriteString(row("Nombre", form.Name))
	b.WriteString(row("Email", form.Email))
	b.WriteString(row("Teléfono", form.Phone))
	b.WriteString("</table>")

	for _, sec := range form.Sections {
		rows := ""
		for _, f := range sec.Fields {
			rows += row(f.Label, f.Value)
		}
		// secciones sin respuestas no aparecen en el email
		if rows == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("<h3 style=\"color:#333;margin-bottom:4px;\">%s</h3>", esc(sec.Title)))
		b.WriteString("<table>" + rows + "</table>")
	}

	return wrap("Cuestionario de admisión", b.String())
}

func BuildPlanHTML(name, analysis string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p>Hola %s,</p>", esc(name)))
	b.WriteString("<p>Aquí tienes el análisis que hemos preparado a partir de tus respuestas:</p>")

	// el texto del modelo también se escapa; los saltos de línea se
	// conservan como párrafos
	for _, para := range strings.Split(analysis, "\n\n") {
		if strings.TrimSpace(para) == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("<p>%s</p>", esc(strings.TrimSpace(para))))
	}

	b.WriteString("<p>Te escribiremos muy pronto para dar el siguiente paso.</p>")
	return wrap("Tu análisis personalizado", b.String())
}

func BuildLeadHTML(lead LeadProfile) string {
	var b strings.Builder
	b.WriteString("<table>")
	b.WriteString(row("Nombre", lead.Name))
	b.WriteString(row("Email", lead.Email))
	b.WriteString(row("Teléfono", lead.Phone))
	b.WriteString(row("Objetivo", lead.Goal))
	b.WriteString(row("Modalidad", lead.Modality))
	b.WriteString("</table>")
	return wrap("Nuevo lead del funnel", b.String())
}
