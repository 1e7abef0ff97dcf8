// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var (
	markdownOnce   sync.Once
	markdownParser goldmark.Markdown
)

func parser() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownParser
}

const wrapBreakpoints = " ,.;-+|"

// RenderMarkdown renders ticket descriptions and messages for the
// terminal, wrapped to width. Soft line breaks reflow; fenced code is
// highlighted with chroma when it names a language.
func RenderMarkdown(input string, theme Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := parser().Parser().Parse(text.NewReader(source))

	// The output always lands in the TUI, so pin the profile instead of
	// detecting it from stderr (which is not a terminal under test).
	renderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	renderer.SetColorProfile(termenv.ANSI256)

	walker := &markdownWalker{source: source, theme: theme, width: width, renderer: renderer}
	_ = ast.Walk(document, walker.walk)
	return strings.TrimRight(walker.out.String(), "\n")
}

type markdownWalker struct {
	source   []byte
	theme    Theme
	width    int
	renderer *lipgloss.Renderer

	out      strings.Builder
	inline   strings.Builder
	newlines int

	indent []string
	bullet string
	lists  []listFrame
	bold   int
	italic int
	strike int
}

type listFrame struct {
	ordered bool
	next    int
	tight   bool
}

func (walker *markdownWalker) style() lipgloss.Style {
	return walker.renderer.NewStyle()
}

func (walker *markdownWalker) prefix() string {
	return strings.Join(walker.indent, "")
}

func (walker *markdownWalker) available() int {
	return max(10, walker.width-ansi.StringWidth(walker.prefix()))
}

func (walker *markdownWalker) write(s string) {
	if s == "" {
		return
	}
	walker.out.WriteString(s)
	trailing := len(s) - len(strings.TrimRight(s, "\n"))
	if trailing == len(s) {
		walker.newlines += trailing
	} else {
		walker.newlines = trailing
	}
}

func (walker *markdownWalker) endLine() {
	if walker.newlines < 1 {
		walker.write("\n")
	}
}

func (walker *markdownWalker) blankLine() {
	if walker.out.Len() == 0 {
		return
	}
	for walker.newlines < 2 {
		walker.write("\n")
	}
}

func (walker *markdownWalker) tight() bool {
	return len(walker.lists) > 0 && walker.lists[len(walker.lists)-1].tight
}

// emit writes block content line by line under the current indent. The
// first line takes a pending list bullet in place of the indent.
func (walker *markdownWalker) emit(block string) {
	for index, line := range strings.Split(block, "\n") {
		lead := walker.prefix()
		if index == 0 && walker.bullet != "" {
			lead, walker.bullet = walker.bullet, ""
		}
		if index > 0 {
			walker.write("\n")
		}
		walker.write(lead + line)
	}
	walker.endLine()
}

func (walker *markdownWalker) flush() string {
	content := walker.inline.String()
	walker.inline.Reset()
	if content == "" {
		return ""
	}
	return ansi.Wrap(content, walker.available(), wrapBreakpoints)
}

func (walker *markdownWalker) styled(s string) string {
	style := walker.style().Foreground(walker.theme.NormalText)
	if walker.bold > 0 {
		style = style.Bold(true)
	}
	if walker.italic > 0 {
		style = style.Italic(true)
	}
	if walker.strike > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(s)
}

func (walker *markdownWalker) faint(s string) string {
	return walker.style().Foreground(walker.theme.FaintText).Render(s)
}

func (walker *markdownWalker) lines(node ast.Node) string {
	var body strings.Builder
	segments := node.Lines()
	for index := range segments.Len() {
		segment := segments.At(index)
		body.Write(segment.Value(walker.source))
	}
	return strings.TrimRight(body.String(), "\n")
}

func (walker *markdownWalker) highlight(code, language string) string {
	if language != "" {
		var highlighted strings.Builder
		if err := quick.Highlight(&highlighted, code, language, "terminal256", "monokai"); err == nil {
			return strings.TrimRight(highlighted.String(), "\n")
		}
	}
	return walker.faint(code)
}

func (walker *markdownWalker) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			walker.inline.Reset()
			break
		}
		if block := walker.flush(); block != "" {
			walker.emit(block)
			if !walker.tight() {
				walker.blankLine()
			}
		}

	case ast.KindHeading:
		if entering {
			walker.inline.Reset()
			break
		}
		content := ansi.Strip(walker.inline.String())
		walker.inline.Reset()
		if content != "" {
			heading := walker.style().Bold(true).Foreground(walker.theme.HeaderForeground)
			walker.blankLine()
			walker.emit(ansi.Wrap(heading.Render(content), walker.available(), wrapBreakpoints))
			walker.blankLine()
		}

	case ast.KindFencedCodeBlock:
		if entering {
			fenced := node.(*ast.FencedCodeBlock)
			walker.blankLine()
			walker.emit(walker.highlight(walker.lines(node), string(fenced.Language(walker.source))))
			walker.blankLine()
			return ast.WalkSkipChildren, nil
		}

	case ast.KindCodeBlock:
		if entering {
			walker.blankLine()
			walker.emit(walker.faint(walker.lines(node)))
			walker.blankLine()
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		if entering {
			walker.indent = append(walker.indent, walker.style().Foreground(walker.theme.BorderColor).Render("│ "))
		} else {
			walker.indent = walker.indent[:len(walker.indent)-1]
			walker.blankLine()
		}

	case ast.KindList:
		if entering {
			list := node.(*ast.List)
			walker.lists = append(walker.lists, listFrame{ordered: list.IsOrdered(), next: list.Start, tight: list.IsTight})
		} else {
			walker.lists = walker.lists[:len(walker.lists)-1]
			if !walker.tight() {
				walker.blankLine()
			}
		}

	case ast.KindListItem:
		if len(walker.lists) == 0 {
			break
		}
		if entering {
			frame := &walker.lists[len(walker.lists)-1]
			marker := "• "
			if frame.ordered {
				marker = fmt.Sprintf("%d. ", frame.next)
				frame.next++
			}
			walker.bullet = walker.prefix() + marker
			walker.indent = append(walker.indent, strings.Repeat(" ", ansi.StringWidth(marker)))
		} else {
			walker.indent = walker.indent[:len(walker.indent)-1]
			walker.endLine()
		}

	case ast.KindThematicBreak:
		if entering {
			walker.blankLine()
			walker.emit(walker.style().Foreground(walker.theme.BorderColor).Render(strings.Repeat("─", walker.available())))
			walker.blankLine()
		}

	case ast.KindHTMLBlock:
		if entering {
			if raw := strings.TrimSpace(walker.lines(node)); raw != "" {
				walker.emit(walker.faint(raw))
				walker.blankLine()
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindText:
		if entering {
			textNode := node.(*ast.Text)
			walker.inline.WriteString(walker.styled(string(textNode.Segment.Value(walker.source))))
			switch {
			case textNode.HardLineBreak():
				walker.inline.WriteString("\n")
			case textNode.SoftLineBreak():
				walker.inline.WriteString(" ")
			}
		}

	case ast.KindString:
		if entering {
			walker.inline.WriteString(walker.styled(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		counter := &walker.italic
		if node.(*ast.Emphasis).Level >= 2 {
			counter = &walker.bold
		}
		if entering {
			*counter++
		} else {
			*counter--
		}

	case extast.KindStrikethrough:
		if entering {
			walker.strike++
		} else {
			walker.strike--
		}

	case ast.KindCodeSpan:
		if entering {
			var code strings.Builder
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				switch inline := child.(type) {
				case *ast.Text:
					code.Write(inline.Segment.Value(walker.source))
				case *ast.String:
					code.Write(inline.Value)
				}
			}
			walker.inline.WriteString(walker.style().Foreground(walker.theme.Accent).Render(code.String()))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if !entering {
			destination := string(node.(*ast.Link).Destination)
			if destination != "" {
				walker.inline.WriteString(" " + walker.faint("("+destination+")"))
			}
		}

	case ast.KindAutoLink:
		if entering {
			url := string(node.(*ast.AutoLink).URL(walker.source))
			walker.inline.WriteString(walker.style().Foreground(walker.theme.Accent).Underline(true).Render(url))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindImage:
		if entering {
			destination := string(node.(*ast.Image).Destination)
			walker.inline.WriteString(walker.faint("[image] " + destination))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindRawHTML:
		if entering {
			return ast.WalkSkipChildren, nil
		}

	case extast.KindTaskCheckBox:
		if entering {
			if node.(*extast.TaskCheckBox).IsChecked {
				walker.inline.WriteString(walker.style().Foreground(walker.theme.SuccessText).Render("[x]") + " ")
			} else {
				walker.inline.WriteString(walker.styled("[ ] "))
			}
		}
	}
	return ast.WalkContinue, nil
}
