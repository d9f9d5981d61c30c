package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cite-editor/internal/editor"
	"github.com/pdiddy/cite-editor/internal/export"
	"github.com/pdiddy/cite-editor/internal/suggest"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the stored document with citation autocomplete",
	Long: `Edit opens the stored document in a line-oriented session. Each input
line is typed at the caret, key by key; "@" starts a citation search against
the API at editor.server_url. Lines starting with ":" are commands; :help
lists them. Every change is saved immediately.`,
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("server", "", "citation API base URL (default http://localhost:5000)")
	editCmd.Flags().String("export-dir", ".", "directory for :export")

	_ = viper.BindPFlag("editor.server_url", editCmd.Flags().Lookup("server"))

	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	kv, docs, err := openDocuments()
	if err != nil {
		return err
	}
	defer kv.Close()

	doc, err := docs.Load(ctx)
	if err != nil {
		return err
	}

	sess := editor.NewSession(doc, suggest.NewClientFromConfig(cfg.Editor),
		editor.WithSaver(docs),
		editor.WithLogger(logger),
		editor.WithMaxQueryLength(cfg.Editor.MaxQueryLength),
	)
	exportDir, _ := cmd.Flags().GetString("export-dir")

	r := &repl{sess: sess, out: cmd.OutOrStdout(), exportDir: exportDir}
	return r.run(ctx, cmd.InOrStdin())
}

const editHelp = `Commands:
  :select N        insert candidate N (1-based)
  :esc             close the suggestion panel
  :bs [N]          backspace N times (default 1)
  :left [N]        move the caret left
  :right [N]       move the caret right
  :nl              insert a line break
  :show            print the document with the caret as |
  :title TEXT      set the document title
  :export FORMAT   write html or docx to the export directory
  :stats           print word and character counts
  :clear           empty the document
  :quit            leave the editor
Any other line is typed at the caret.`

// errQuit ends the loop without an error.
var errQuit = errors.New("quit")

// repl drives a Session from text lines.
type repl struct {
	sess      *editor.Session
	out       io.Writer
	exportDir string
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	fmt.Fprintf(r.out, "Editing %q. Type :help for commands.\n", r.sess.Document().Title)

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := r.line(ctx, sc.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
		r.sess.Wait()
		r.printPanel()
	}
	return sc.Err()
}

func (r *repl) line(ctx context.Context, text string) error {
	if !strings.HasPrefix(text, ":") {
		r.sess.Type(ctx, text)
		return nil
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(text, ":"), " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "select":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("select needs a number: %w", err)
		}
		return r.sess.Select(ctx, n-1)
	case "esc":
		r.sess.HandleKey(ctx, editor.Escape)
	case "bs":
		return r.repeat(ctx, editor.Backspace, arg)
	case "left":
		return r.repeat(ctx, editor.Left, arg)
	case "right":
		return r.repeat(ctx, editor.Right, arg)
	case "nl":
		r.sess.HandleKey(ctx, editor.Enter)
	case "show":
		r.show()
	case "title":
		r.sess.SetTitle(ctx, arg)
	case "export":
		path, err := export.Write(r.sess.Document(), arg, r.exportDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Wrote %s\n", path)
	case "stats":
		st, err := r.sess.Stats()
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Words: %d  Characters: %d\n", st.Words, st.Characters)
	case "clear":
		r.sess.Clear(ctx)
	case "help":
		fmt.Fprintln(r.out, editHelp)
	case "quit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command :%s", name)
	}
	return nil
}

func (r *repl) repeat(ctx context.Context, k editor.Key, arg string) error {
	n := 1
	if arg != "" {
		v, err := strconv.Atoi(arg)
		if err != nil || v < 1 {
			return fmt.Errorf("invalid count %q", arg)
		}
		n = v
	}
	for range n {
		r.sess.HandleKey(ctx, k)
	}
	return nil
}

func (r *repl) show() {
	doc := r.sess.Document()
	caret := r.sess.Caret()
	fmt.Fprintf(r.out, "# %s\n%s|%s\n", doc.Title, doc.Content[:caret], doc.Content[caret:])
}

func (r *repl) printPanel() {
	p := r.sess.Panel()
	if !p.Visible || p.Query == "" {
		return
	}
	if len(p.Candidates) == 0 {
		fmt.Fprintf(r.out, "@%s: no suggestions\n", p.Query)
		return
	}
	fmt.Fprintf(r.out, "@%s:\n", p.Query)
	for i, c := range p.Candidates {
		fmt.Fprintf(r.out, "  %d. %s\n", i+1, c.Citation())
	}
}
