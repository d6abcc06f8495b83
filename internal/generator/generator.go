package generator

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"github.com/ronappleton/autotests-backend/internal/order"
)

const (
	defaultClassTemplate = "templates/AppTests.java.tpl"
	defaultStepTemplate  = "templates/step.tpl"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

// Renderer turns an order into generated test source.
type Renderer interface {
	Render(o order.Order) (string, error)
}

// Generator renders the test class for an order from a class template and a
// step template. Templates are read on every Render so edits on disk are
// picked up without a restart.
type Generator struct {
	readFile  func(path string) ([]byte, error)
	classPath string
	stepPath  string
}

// New returns a Generator reading templates from the given file paths. An
// empty path selects the embedded default template.
func New(classPath, stepPath string) *Generator {
	return &Generator{readFile: os.ReadFile, classPath: classPath, stepPath: stepPath}
}

// NewWithFS returns a Generator that resolves both template paths inside fsys.
func NewWithFS(fsys fs.FS, classPath, stepPath string) *Generator {
	return &Generator{
		readFile:  func(path string) ([]byte, error) { return fs.ReadFile(fsys, path) },
		classPath: classPath,
		stepPath:  stepPath,
	}
}

type classData struct {
	Title string
	Steps string
}

type stepData struct {
	Step string
}

// Render builds the test source for o. Step text is substituted verbatim.
func (g *Generator) Render(o order.Order) (string, error) {
	classTmpl, err := g.load("class", g.classPath, defaultClassTemplate)
	if err != nil {
		return "", err
	}
	stepTmpl, err := g.load("step", g.stepPath, defaultStepTemplate)
	if err != nil {
		return "", err
	}

	var steps strings.Builder
	for _, step := range o.StepList() {
		if err := stepTmpl.Execute(&steps, stepData{Step: step}); err != nil {
			return "", fmt.Errorf("failed to render step %q: %w", step, err)
		}
	}

	var out strings.Builder
	if err := classTmpl.Execute(&out, classData{Title: o.Title, Steps: steps.String()}); err != nil {
		return "", fmt.Errorf("failed to render test class: %w", err)
	}
	return out.String(), nil
}

func (g *Generator) load(name, path, fallback string) (*template.Template, error) {
	var (
		content []byte
		err     error
	)
	if path == "" {
		content, err = fs.ReadFile(templatesFS, fallback)
	} else {
		content, err = g.readFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s template: %w", name, err)
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
	}
	return tmpl, nil
}
