package housekeeping

import (
	"smallgit.dev/smallgit/internal/action"
	"smallgit.dev/smallgit/internal/tui"
)

var mottos = []string{
	"Always keep tree-like structure, linear history",
	"始终保持树形结构, 线性历史",
	"One commit doesn't matter, all commits matter",
	"一次修改无关紧要, 总的修改才重要",
	"Only 3 branches: yours, your-origin and master",
	"只有 3 个分支: 你的分支, 你的远程分支和主分支",
	"Take ownership of your branch",
	"自己的分支自己负责",
}

// yours and your-origin forked from master, one merged back
var diagram = []string{
	`         `,
	`    |    `,
	`    ●    `,
	` |  |    `,
	` ●  ●    `,
	`  \ |  | `,
	`    ●  ● `,
	`    | /  `,
	`    ●    `,
	`    |    `,
	`         `,
}

// Zen prints the workflow mottos and the branch diagram.
func Zen(splog *tui.Splog) {
	for _, line := range mottos {
		splog.Info(tui.ColorMotto(line))
	}
	for _, line := range diagram {
		splog.Info(line)
	}
}

// Show prints the START line of every action so the operator can learn the
// labels.
func Show(report *tui.Reporter) {
	for _, a := range action.All() {
		report.Start(a)
	}
}
