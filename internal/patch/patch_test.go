package patch

import (
	"strings"
	"testing"

	"github.com/interpretive-systems/difftable/internal/diffmodel"
	"github.com/interpretive-systems/difftable/internal/unified"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gitPatch = `diff --git a/main.go b/main.go
index 1111111..2222222 100644
--- a/main.go
+++ b/main.go
@@ -10,4 +10,5 @@ func main() {
 a := 1
-b := 2
+b := 3
+c := 4
 fmt.Println(a, b)
 }
diff --git a/new.txt b/new.txt
new file mode 100644
index 0000000..3333333
--- /dev/null
+++ b/new.txt
@@ -0,0 +1,2 @@
+hello
+world
diff --git a/old.txt b/old.txt
deleted file mode 100644
index 4444444..0000000
--- a/old.txt
+++ /dev/null
@@ -1,2 +0,0 @@
-bye
-now
diff --git a/logo.png b/logo.png
index 5555555..6666666 100644
Binary files a/logo.png and b/logo.png differ
`

func TestParse_GitPatch(t *testing.T) {
	files, err := ParseString(gitPatch)
	require.NoError(t, err)
	require.Len(t, files, 4)

	edited := files[0]
	assert.Equal(t, "main.go", edited.Name)
	assert.Equal(t, "a/main.go", edited.OldLabel)
	assert.Equal(t, "b/main.go", edited.NewLabel)
	assert.Equal(t, []diffmodel.Block{
		diffmodel.Skip("func main() {"),
		diffmodel.Equal(10, 10, "a := 1"),
		diffmodel.Replace(11, []string{"b := 2"}, 11, []string{"b := 3", "c := 4"}),
		diffmodel.Equal(12, 13, "fmt.Println(a, b)", "}"),
	}, edited.Blocks)

	added := files[1]
	assert.Equal(t, "new.txt", added.Name)
	assert.Equal(t, "/dev/null", added.OldLabel)
	assert.Equal(t, "b/new.txt", added.NewLabel)
	assert.Equal(t, []diffmodel.Block{diffmodel.Insert(1, "hello", "world")}, added.Blocks)

	removed := files[2]
	assert.Equal(t, "old.txt", removed.Name)
	assert.Equal(t, "a/old.txt", removed.OldLabel)
	assert.Equal(t, "/dev/null", removed.NewLabel)
	assert.Equal(t, []diffmodel.Block{diffmodel.Delete(1, "bye", "now")}, removed.Blocks)

	binary := files[3]
	assert.Equal(t, "logo.png", binary.Name)
	assert.Empty(t, binary.Blocks)
}

func TestParse_GitPatchReconstructs(t *testing.T) {
	files, err := ParseString(gitPatch)
	require.NoError(t, err)

	cases := []struct {
		file int
		want []string
	}{
		{0, []string{
			"Index: main.go",
			"===================================================================",
			"--- a/main.go",
			"+++ b/main.go",
			"@@ -10,4 +10,5 @@ func main() {",
			" a := 1",
			"-b := 2",
			"+b := 3",
			"+c := 4",
			" fmt.Println(a, b)",
			" }",
		}},
		{1, []string{
			"Index: new.txt",
			"===================================================================",
			"--- /dev/null",
			"+++ b/new.txt",
			"@@ -0,0 +1,2 @@",
			"+hello",
			"+world",
		}},
		{2, []string{
			"Index: old.txt",
			"===================================================================",
			"--- a/old.txt",
			"+++ /dev/null",
			"@@ -1,2 +0,0 @@",
			"-bye",
			"-now",
		}},
		{3, nil},
	}
	for _, tc := range cases {
		t.Run(files[tc.file].Name, func(t *testing.T) {
			got, err := unified.FromFile(files[tc.file], unified.Options{EOL: "\n"})
			require.NoError(t, err)
			assert.Equal(t, strings.Join(tc.want, "\n"), got)
		})
	}
}

// hunks returns the lines of text from the first hunk header on.
func hunks(text string) []string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, "@@ ") {
			return lines[i:]
		}
	}
	return nil
}

// labels returns the ---/+++ lines of the first file of text.
func labels(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if strings.HasPrefix(l, "--- ") || strings.HasPrefix(l, "+++ ") {
			out = append(out, l)
		}
		if strings.HasPrefix(l, "@@ ") {
			break
		}
	}
	return out
}

func TestParse_DifflibRoundTrip(t *testing.T) {
	var a, b []string
	for i := 1; i <= 12; i++ {
		a = append(a, "line"+string(rune('a'+i-1)))
	}
	b = append(b, a[:2]...)
	b = append(b, "THREE")
	b = append(b, a[3:7]...)
	b = append(b, a[8:11]...)
	b = append(b, "new", a[11])

	want, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.Join(a, "\n")),
		B:        difflib.SplitLines(strings.Join(b, "\n")),
		FromFile: "letters.orig",
		ToFile:   "letters.txt",
		Context:  1,
	})
	require.NoError(t, err)
	require.Equal(t, 3, strings.Count(want, "\n@@ "), want)

	files, err := ParseString(want)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "letters.txt", files[0].Name)
	assert.Equal(t, 8, files[0].OldLineCount())
	assert.Equal(t, 8, files[0].NewLineCount())

	got, err := unified.FromFile(files[0], unified.Options{EOL: "\n"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--- letters.orig", "+++ letters.txt"}, labels(want))
	assert.Equal(t, labels(want), labels(got))
	assert.Equal(t, hunks(want), hunks(got))
}

func TestParse_PlainPatchLabels(t *testing.T) {
	cases := []struct {
		name     string
		patch    string
		wantName string
		wantOld  string
		wantNew  string
	}{
		{
			name:     "prefixed paths",
			patch:    "--- a/x\n+++ b/x\n@@ -1 +1 @@\n-a\n+b\n",
			wantName: "x", wantOld: "a/x", wantNew: "b/x",
		},
		{
			name: "different names with timestamps",
			patch: "--- old.txt\t2024-01-01 10:00:00.000000000 +0000\n" +
				"+++ new.txt\t2024-01-02 10:00:00.000000000 +0000\n" +
				"@@ -1 +1 @@\n-a\n+b\n",
			wantName: "new.txt", wantOld: "old.txt", wantNew: "new.txt",
		},
		{
			name:     "created",
			patch:    "--- /dev/null\n+++ b/made.txt\n@@ -0,0 +1 @@\n+b\n",
			wantName: "made.txt", wantOld: "/dev/null", wantNew: "b/made.txt",
		},
		{
			name:     "removed",
			patch:    "--- a/gone.txt\n+++ /dev/null\n@@ -1 +0,0 @@\n-a\n",
			wantName: "gone.txt", wantOld: "a/gone.txt", wantNew: "/dev/null",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			files, err := ParseString(tc.patch)
			require.NoError(t, err)
			require.Len(t, files, 1)
			assert.Equal(t, tc.wantName, files[0].Name)
			assert.Equal(t, tc.wantOld, files[0].OldLabel)
			assert.Equal(t, tc.wantNew, files[0].NewLabel)

			got, err := unified.FromFile(files[0], unified.Options{EOL: "\n"})
			require.NoError(t, err)
			assert.Equal(t, []string{"--- " + tc.wantOld, "+++ " + tc.wantNew}, labels(got))
		})
	}
}

func TestParse_HeaderLookalikeInFragment(t *testing.T) {
	const sql = `--- a/q.sql
+++ b/q.sql
@@ -1,2 +1,2 @@
 select 1;
--- old comment
+++ new comment
@@ -10,1 +10,1 @@
-x
+y
`
	files, err := ParseString(sql)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "q.sql", files[0].Name)
	assert.Equal(t, "a/q.sql", files[0].OldLabel)
	assert.Equal(t, "b/q.sql", files[0].NewLabel)
	assert.Equal(t, []diffmodel.Block{
		diffmodel.Equal(1, 1, "select 1;"),
		diffmodel.Replace(2, []string{"-- old comment"}, 2, []string{"++ new comment"}),
		diffmodel.Skip(""),
		diffmodel.Replace(10, []string{"x"}, 10, []string{"y"}),
	}, files[0].Blocks)
}

func TestScanHeaders(t *testing.T) {
	hdrs := scanHeaders(gitPatch + "--- plain.txt\n+++ plain.txt\n@@ -1 +1 @@\n-a\n+b\n\\ No newline at end of file\n")
	assert.Equal(t, []fileHeader{
		{git: true}, {git: true}, {git: true}, {git: true},
		{old: "plain.txt", new: "plain.txt"},
	}, hdrs)
	assert.Equal(t, "with space.txt", headerPath(`"with space.txt"`+"\t2024"))
}

func TestParse_Errors(t *testing.T) {
	_, err := ParseString("diff --git a/x b/x\n--- a/x\n+++ b/x\n@@ -1,3 +1,3 @@\n a\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse patch")

	files, err := ParseString("")
	require.NoError(t, err)
	assert.Empty(t, files)
}
