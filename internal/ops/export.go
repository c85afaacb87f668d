package ops

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/kmabeeTT/claude-code-history/internal/errors"
	"github.com/kmabeeTT/claude-code-history/internal/session"
	"github.com/kmabeeTT/claude-code-history/internal/store"
)

// ExportFormat selects the export file format.
type ExportFormat string

const (
	FormatMarkdown ExportFormat = "markdown"
	FormatHTML     ExportFormat = "html"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Target  string       // session number or ID, as for View
	Path    string       // optional; default <BaseDir>/exports/<sessionId>.<ext>
	Format  ExportFormat // default markdown
	BaseDir string       // application base dir for the default path
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path         string `json:"path"`
	Format       string `json:"format"`
	MessageCount int    `json:"message_count"`
}

// Export writes one session's transcript to a markdown or HTML file.
func Export(st *store.Store, input ExportInput) (*ExportOutput, error) {
	format := input.Format
	if format == "" {
		format = FormatMarkdown
	}
	if format != FormatMarkdown && format != FormatHTML {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("unknown export format %q (markdown|html)", format))
	}

	view, err := View(st, ViewInput{Target: input.Target})
	if err != nil {
		return nil, err
	}

	doc := renderMarkdown(&view.Session, view.Messages)

	var data []byte
	if format == FormatHTML {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(doc), &buf); err != nil {
			return nil, errors.NewInternal(err)
		}
		data = buf.Bytes()
	} else {
		data = []byte(doc)
	}

	exportPath := input.Path
	if exportPath == "" {
		ext := "md"
		if format == FormatHTML {
			ext = "html"
		}
		exportPath = filepath.Join(input.BaseDir, "exports",
			fmt.Sprintf("%s.%s", view.Session.SessionID, ext))
	}

	if err := writeAtomic(exportPath, data); err != nil {
		return nil, errors.NewInternal(err)
	}

	return &ExportOutput{
		Path:         exportPath,
		Format:       string(format),
		MessageCount: len(view.Messages),
	}, nil
}

// renderMarkdown builds the markdown transcript document.
func renderMarkdown(s *session.Session, messages []session.Message) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Session %s\n\n", s.SessionID)
	fmt.Fprintf(&b, "- **Summary:** %s\n", s.Summary)
	fmt.Fprintf(&b, "- **Created:** %s\n", FormatDate(s.Created))
	fmt.Fprintf(&b, "- **Modified:** %s\n", FormatDate(s.Modified))
	fmt.Fprintf(&b, "- **Messages:** %d\n", s.MessageCount)
	fmt.Fprintf(&b, "- **Branch:** %s\n", s.GitBranch)
	fmt.Fprintf(&b, "- **Project:** %s\n", s.ProjectPath)

	for i := range messages {
		fmt.Fprintf(&b, "\n## %s - %s\n\n", messages[i].Role(), FormatDate(messages[i].Timestamp))
		b.WriteString(session.ExtractText(&messages[i]))
		b.WriteString("\n")
	}

	return b.String()
}

// writeAtomic writes via a temp file and rename so a failed export
// never leaves a partial file at the destination.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
