package main

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-extractor/internal/config"
)

const (
	docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`
	docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`
)

// writeDOCX writes a minimal Word document with one paragraph per line.
func writeDOCX(t *testing.T, dir, name string, lines []string) string {
	t.Helper()

	var body strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&body, `<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, html.EscapeString(line))
	}
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() + `</w:body></w:document>`

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, part := range []struct{ name, content string }{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", document},
	} {
		w, err := zw.Create(part.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(part.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// writeJSONFile marshals v into dir/name and returns the path.
func writeJSONFile(t *testing.T, dir, name string, v any) string {
	t.Helper()
	content, err := json.Marshal(v)
	require.NoError(t, err)
	return writeFile(t, dir, name, string(content))
}

// readJSONMap decodes the JSON object at path.
func readJSONMap(t *testing.T, path string) map[string]any {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(content, &m))
	return m
}

var resumeLines = []string{
	"Jane Doe",
	"jane.doe@example.com | (555) 123-4567",
	"",
	"EDUCATION",
	"B.S. in Computer Science, University of Wisconsin 2023",
	"",
	"EXPERIENCE",
	"Software Engineer | Acme Corp",
	"Jan 2022 - Present",
	"Built Python services backed by SQL",
	"",
	"SKILLS",
	"Python, SQL, Docker",
}

// resetFlags restores every command's flag variables and the resolved config
// once the test ends.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		appConfig = config.Defaults()
		extractInputFile, extractOutputFile = "", ""
		extractShowText, extractShowTrace, extractNoValidate = false, false, false
		inspectInputFile = ""
		tailorResumeFile, tailorJobFile, tailorOutputFile = "", "", ""
		analyzeResumeFile, analyzeJobFile, analyzeOutputFile = "", "", ""
		scrapeURL, scrapeHTMLFile, scrapeOutputFile = "", "", ""
		batchInputDir, batchOutputDir, batchWorkers = "", "", 0
	})
}
