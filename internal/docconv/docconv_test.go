package docconv

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Résumé of “the” plan</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">Step </w:t></w:r><w:r><w:t>one</w:t><w:tab/><w:t>done</w:t></w:r></w:p>
    <w:p><w:r><w:t>Line</w:t><w:br/><w:t>break – end</w:t></w:r></w:p>
  </w:body>
</w:document>`

const wantText = "Résumé of “the” plan\nStep one\tdone\nLine\nbreak – end\n"

// writeDocx creates a minimal .docx archive holding the given document part.
func writeDocx(t *testing.T, path, document string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?><Types/>`))
	require.NoError(t, err)

	w, err = zw.Create(documentPart)
	require.NoError(t, err)
	_, err = w.Write([]byte(document))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

type fakeRunner struct {
	out   string
	err   error
	calls [][]string
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return []byte(f.out), f.err
}

func TestDocumentText(t *testing.T) {
	text, err := DocumentText(strings.NewReader(documentXML))
	require.NoError(t, err)
	require.Equal(t, wantText, text)

	_, err = DocumentText(strings.NewReader("<w:document><unclosed>"))
	require.Error(t, err)
}

func TestToASCII(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "Résumé", want: "Resume"},
		{in: "“quoted” – ‘x’", want: `"quoted" - 'x'`},
		{in: "Straße æ ﬁle", want: "Strasse ae file"},
		{in: "Łódź", want: "Lodz"},
		{in: "日本 ok", want: " ok"},
		{in: "tab\tnew\nline", want: "tab\tnew\nline"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got := ToASCII(tc.in)
			require.Equal(t, tc.want, got)
			for _, r := range got {
				require.LessOrEqual(t, r, rune(127))
			}
		})
	}
}

func TestConverter_Docx(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "plan.docx")
	writeDocx(t, input, documentXML)

	report := NewConverter(Options{}).Convert(context.Background(), []string{input})
	require.True(t, report.OK())
	require.Equal(t, []Conversion{{Input: input, Output: input + ".txt"}}, report.Converted)

	data, err := os.ReadFile(input + ".txt")
	require.NoError(t, err)
	require.Equal(t, wantText, string(data))
}

func TestConverter_ASCIIAndOutDir(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in", "plan.docx")
	writeDocx(t, input, documentXML)
	outDir := filepath.Join(dir, "out", "text")

	report := NewConverter(Options{ASCII: true, OutDir: outDir}).Convert(context.Background(), []string{input})
	require.True(t, report.OK())

	data, err := os.ReadFile(filepath.Join(outDir, "plan.docx.txt"))
	require.NoError(t, err)
	require.Equal(t, "Resume of \"the\" plan\nStep one\tdone\nLine\nbreak - end\n", string(data))
	for _, b := range data {
		require.Less(t, b, byte(128))
	}
	require.NoFileExists(t, input+".txt")
}

func TestConverter_MissingAndUnsupported(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.docx")
	unsupported := filepath.Join(dir, "notes.pdf")
	require.NoError(t, os.WriteFile(unsupported, []byte("%PDF"), 0o644))

	report := NewConverter(Options{}).Convert(context.Background(), []string{missing, unsupported})

	require.False(t, report.OK())
	require.Len(t, report.Failed, 1)
	require.Equal(t, missing, report.Failed[0].Input)
	require.ErrorIs(t, report.Err(), os.ErrNotExist)
	require.Len(t, report.Skipped, 1)
	require.Equal(t, unsupported, report.Skipped[0].Input)
	require.ErrorIs(t, report.Skipped[0].Err, ErrUnsupported)
	require.Empty(t, report.Converted)
	require.NoFileExists(t, missing+".txt")
	require.NoFileExists(t, unsupported+".txt")
}

func TestConverter_LegacyDoc(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "old.DOC")
	require.NoError(t, os.WriteFile(input, []byte{0xd0, 0xcf}, 0o644))

	runner := &fakeRunner{out: "legacy text\n"}
	report := NewConverter(Options{Antiword: "/opt/antiword", Runner: runner}).Convert(context.Background(), []string{input})
	require.True(t, report.OK())
	require.Equal(t, [][]string{{"/opt/antiword", "-m", "UTF-8.txt", "-w", "0", input}}, runner.calls)

	data, err := os.ReadFile(input + ".txt")
	require.NoError(t, err)
	require.Equal(t, "legacy text\n", string(data))

	runner.err = errors.New("exit status 1")
	report = NewConverter(Options{Runner: runner}).Convert(context.Background(), []string{input})
	require.False(t, report.OK())
	require.ErrorContains(t, report.Err(), "failed to extract text")
}

func TestConverter_Directory(t *testing.T) {
	dir := t.TempDir()
	writeDocx(t, filepath.Join(dir, "a.docx"), documentXML)
	writeDocx(t, filepath.Join(dir, "sub", "b.docx"), documentXML)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), nil, 0o644))

	report := NewConverter(Options{}).Convert(context.Background(), []string{dir})
	require.True(t, report.OK())
	require.Len(t, report.Converted, 2)
	require.FileExists(t, filepath.Join(dir, "a.docx.txt"))
	require.FileExists(t, filepath.Join(dir, "sub", "b.docx.txt"))
}

func TestDocx_NotAnArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := Docx{}.Extract(context.Background(), path)
	require.ErrorContains(t, err, "docx archive")
}

const strictDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://purl.oclc.org/ooxml/wordprocessingml/main" w:conformance="strict">
  <w:body>
    <w:p><w:r><w:t>Strict body</w:t></w:r></w:p>
  </w:body>
</w:document>`

const textBoxXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
    xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"
    xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape"
    xmlns:v="urn:schemas-microsoft-com:vml">
  <w:body>
    <w:p><w:r><mc:AlternateContent>
      <mc:Choice Requires="wps"><wps:txbx><w:txbxContent><w:p><w:r><w:t>Boxed</w:t></w:r></w:p></w:txbxContent></wps:txbx></mc:Choice>
      <mc:Fallback><v:textbox><w:txbxContent><w:p><w:r><w:t>Boxed</w:t></w:r></w:p></w:txbxContent></v:textbox></mc:Fallback>
    </mc:AlternateContent></w:r></w:p>
  </w:body>
</w:document>`

func TestDocumentText_Variants(t *testing.T) {
	testCases := []struct {
		name    string
		xml     string
		want    string
		wantErr error
	}{
		{name: "strict namespace", xml: strictDocumentXML, want: "Strict body\n"},
		{name: "alternate content read once", xml: textBoxXML, want: "Boxed\n\n"},
		{name: "foreign namespace has no body", xml: `<doc xmlns="urn:other"><body><p><t>x</t></p></body></doc>`, wantErr: ErrNoBody},
		{name: "empty body is fine", xml: `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body/></w:document>`, want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			text, err := DocumentText(strings.NewReader(tc.xml))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, text)
		})
	}
}

func TestConverter_UnrecognizedBodyFails(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "strict.docx")
	bad := filepath.Join(dir, "foreign.docx")
	writeDocx(t, good, strictDocumentXML)
	writeDocx(t, bad, `<doc xmlns="urn:other"><body/></doc>`)

	report := NewConverter(Options{}).Convert(context.Background(), []string{good, bad})

	require.Equal(t, []Conversion{{Input: good, Output: good + ".txt"}}, report.Converted)
	require.Len(t, report.Failed, 1)
	require.Equal(t, bad, report.Failed[0].Input)
	require.ErrorIs(t, report.Err(), ErrNoBody)
	require.NoFileExists(t, bad+".txt")

	data, err := os.ReadFile(good + ".txt")
	require.NoError(t, err)
	require.Equal(t, "Strict body\n", string(data))
}

func TestConverter_OutDirCollisions(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a", "x.docx")
	second := filepath.Join(dir, "b", "x.docx")
	writeDocx(t, first, `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>FIRST</w:t></w:r></w:p></w:body></w:document>`)
	writeDocx(t, second, `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>SECOND</w:t></w:r></w:p></w:body></w:document>`)

	t.Run("file inputs sharing a base name", func(t *testing.T) {
		outDir := filepath.Join(t.TempDir(), "out")
		report := NewConverter(Options{OutDir: outDir}).Convert(context.Background(), []string{first, second})

		require.Equal(t, []Conversion{{Input: first, Output: filepath.Join(outDir, "x.docx.txt")}}, report.Converted)
		require.Len(t, report.Failed, 1)
		require.Equal(t, second, report.Failed[0].Input)
		require.ErrorIs(t, report.Err(), ErrDuplicateOutput)

		data, err := os.ReadFile(filepath.Join(outDir, "x.docx.txt"))
		require.NoError(t, err)
		require.Equal(t, "FIRST\n", string(data))
	})

	t.Run("directory input mirrors its tree", func(t *testing.T) {
		outDir := filepath.Join(t.TempDir(), "out")
		report := NewConverter(Options{OutDir: outDir}).Convert(context.Background(), []string{dir})

		require.True(t, report.OK())
		require.Len(t, report.Converted, 2)
		for name, want := range map[string]string{"a": "FIRST\n", "b": "SECOND\n"} {
			data, err := os.ReadFile(filepath.Join(outDir, name, "x.docx.txt"))
			require.NoError(t, err)
			require.Equal(t, want, string(data))
		}
	})

	t.Run("same input twice", func(t *testing.T) {
		report := NewConverter(Options{}).Convert(context.Background(), []string{first, first})

		require.Len(t, report.Converted, 1)
		require.ErrorIs(t, report.Err(), ErrDuplicateOutput)
	})
}
