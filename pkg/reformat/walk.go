package reformat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
)

// ConversationSubdir is the optional nesting directory raw exports
// arrive in.
const ConversationSubdir = "Student_GPT_conversation_by_question"

// maxTasks bounds the task directory scan (task1 .. task18).
const maxTasks = 18

// Result holds the collected turns and any files that could not be
// parsed.
type Result struct {
	Turns   []DialogTurn
	Skipped []string
}

// Collect walks the task directories under root and parses every .txt
// transcript. The case id is the file name up to the first underscore;
// the week is the task directory number. Progress is reported on
// stderr when showProgress is set.
func Collect(root string, showProgress bool) (*Result, error) {
	if sub := filepath.Join(root, ConversationSubdir); isDir(sub) {
		root = sub
	}

	type taskFile struct {
		path string
		week int
	}
	var files []taskFile
	for week := 1; week <= maxTasks; week++ {
		dir := filepath.Join(root, fmt.Sprintf("task%d", week))
		if !isDir(dir) {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(dir, "*.txt"))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			files = append(files, taskFile{path: m, week: week})
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no task directories with .txt transcripts under %s", root)
	}

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.Default(int64(len(files)), "parsing transcripts")
	}

	res := &Result{}
	for _, tf := range files {
		if bar != nil {
			bar.Add(1)
		}

		caseID := caseIDFromFilename(tf.path)
		if caseID == "" {
			res.Skipped = append(res.Skipped, tf.path)
			continue
		}

		content, err := os.ReadFile(tf.path)
		if err != nil {
			res.Skipped = append(res.Skipped, tf.path)
			continue
		}

		turns, ok := ParseConversation(content, caseID, tf.week)
		if !ok {
			res.Skipped = append(res.Skipped, tf.path)
			continue
		}
		res.Turns = append(res.Turns, turns...)
	}

	return res, nil
}

// caseIDFromFilename returns the file name part before the first
// underscore, e.g. "31de0a7aaa" from "31de0a7aaa_task1.txt".
func caseIDFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if i := strings.Index(base, "_"); i >= 0 {
		return base[:i]
	}
	return base
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
