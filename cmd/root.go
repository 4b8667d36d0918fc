// Package cmd implements the CLI command structure for tasktrack.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/nibzard/tasktrack-go/internal/config"
	"github.com/nibzard/tasktrack-go/internal/logging"
	"github.com/nibzard/tasktrack-go/internal/service"
	"github.com/nibzard/tasktrack-go/internal/store"
	"github.com/nibzard/tasktrack-go/internal/task"
	"github.com/nibzard/tasktrack-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tasktrack CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasktrack", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		printUsage(fs, os.Stderr)
		return fmt.Errorf("missing command")
	}
	subcommand := strings.ToLower(strings.TrimSpace(remaining[0]))
	cmdArgs := remaining[1:]

	// Diagnostics go to stderr; stdout is reserved for command output.
	logger := logging.FromConfig(os.Stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	st := store.New(cfg.TasksFile, store.WithLogger(logger))
	svc := service.New(st, service.WithLogger(logger))

	switch subcommand {
	case "add":
		return addCommand(svc, cmdArgs)
	case "update":
		return updateCommand(svc, cmdArgs)
	case "delete":
		return deleteCommand(svc, cmdArgs)
	case "mark-in-progress":
		return markCommand(svc, cmdArgs, task.StatusInProgress)
	case "mark-done":
		return markCommand(svc, cmdArgs, task.StatusDone)
	case "list":
		return listCommand(svc, cmdArgs, os.Stdout)
	case "tui":
		return ui.Run(ctx, cfg, svc)
	case "doctor":
		return doctorCommand(cfg, st)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// addCommand creates a new task from the remaining arguments.
func addCommand(svc *service.Service, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("add requires a description")
	}

	created, err := svc.Add(strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Printf("Task added successfully (ID: %d)\n", created.ID)
	return nil
}

// updateCommand replaces a task's description.
func updateCommand(svc *service.Service, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("update requires <id> <new_description>")
	}

	id, err := service.ParseID(args[0])
	if err != nil {
		return err
	}
	if _, err := svc.Update(id, strings.Join(args[1:], " ")); err != nil {
		return err
	}

	fmt.Printf("Task %d updated successfully.\n", id)
	return nil
}

// deleteCommand removes a task.
func deleteCommand(svc *service.Service, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("delete requires <id>")
	}

	id, err := service.ParseID(args[0])
	if err != nil {
		return err
	}
	if err := svc.Delete(id); err != nil {
		return err
	}

	fmt.Printf("Task %d deleted successfully.\n", id)
	return nil
}

// markCommand sets a task's status (mark-in-progress, mark-done).
func markCommand(svc *service.Service, args []string, status task.Status) error {
	if len(args) != 1 {
		return fmt.Errorf("mark-%s requires <id>", statusSuffix(status))
	}

	id, err := service.ParseID(args[0])
	if err != nil {
		return err
	}
	if _, err := svc.SetStatus(id, status); err != nil {
		return err
	}

	fmt.Printf("Task %d marked as %s.\n", id, status)
	return nil
}

func statusSuffix(status task.Status) string {
	if status == task.StatusDone {
		return "done"
	}
	return "in-progress"
}

// listCommand prints tasks, optionally filtered by status.
func listCommand(svc *service.Service, args []string, w io.Writer) error {
	if len(args) > 1 {
		return fmt.Errorf("list takes at most one optional status")
	}

	filter := ""
	if len(args) == 1 {
		filter = args[0]
	}

	tasks, err := svc.List(filter)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return nil
	}
	for _, t := range tasks {
		renderTask(w, t)
	}
	return nil
}

// renderTask prints a single task in the list format.
func renderTask(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "[%d] (%s) %s\n", t.ID, t.Status, t.Description)
	fmt.Fprintf(w, "    created: %s\n", t.CreatedAt.Format(task.TimeLayout))
	fmt.Fprintf(w, "    updated: %s\n", t.UpdatedAt.Format(task.TimeLayout))
}

// doctorCommand checks the tasks file, schema, and effective config.
func doctorCommand(cfg *config.Config, st *store.Store) error {
	fmt.Println("Tasktrack Doctor")
	fmt.Println("================")
	fmt.Println()

	allOK := true

	fmt.Printf("Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	fmt.Printf("Tasks file: %s\n", cfg.TasksFile)
	var tasks []task.Task
	if _, err := os.Stat(cfg.TasksFile); os.IsNotExist(err) {
		fmt.Println("  ✅ Not created yet (created on first command)")
	} else {
		loaded, err := st.Load()
		if err != nil {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		} else {
			tasks = loaded
			fmt.Printf("  ✅ OK (%d tasks)\n", len(tasks))
		}
	}
	fmt.Println()

	fmt.Printf("Schema: %s\n", cfg.SchemaFile)
	result := task.Validate(tasks, task.ValidationOptions{SchemaPath: cfg.SchemaFile})
	for _, warning := range result.Warnings {
		fmt.Printf("  ⚠️  %s\n", warning)
	}
	if result.Valid {
		if result.UsedSchema {
			fmt.Println("  ✅ Tasks valid against schema")
		} else {
			fmt.Println("  ✅ Tasks pass minimal checks")
		}
	} else {
		for _, err := range result.Errors {
			fmt.Printf("  ❌ %v\n", err)
		}
		allOK = false
	}
	fmt.Println()

	fmt.Println("Config:")
	fmt.Printf("  Tasks file: %s\n", cfg.TasksFile)
	fmt.Printf("  Schema file: %s\n", cfg.SchemaFile)
	fmt.Printf("  Log level: %s\n", cfg.LogLevel)
	fmt.Printf("  Log format: %s\n", cfg.LogFormat)
	fmt.Println()

	if !allOK {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("tasktrack %s (%s/%s)\n", Version, runtime.GOOS, runtime.GOARCH)
	return nil
}

// printUsage prints usage text to the given writer.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasktrack - local task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasktrack [flags] <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <description>          Add a new task")
	fmt.Fprintln(w, "  update <id> <description>  Replace a task's description")
	fmt.Fprintln(w, "  delete <id>                Delete a task")
	fmt.Fprintln(w, "  mark-in-progress <id>      Mark a task as in-progress")
	fmt.Fprintln(w, "  mark-done <id>             Mark a task as done")
	fmt.Fprintln(w, "  list [todo|in-progress|done]  List tasks, optionally by status")
	fmt.Fprintln(w, "  tui                        Interactive task list")
	fmt.Fprintln(w, "  doctor                     Check tasks file and config")
	fmt.Fprintln(w, "  version                    Show version")
	fmt.Fprintln(w, "  help                       Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	if fs != nil {
		old := fs.Output()
		fs.SetOutput(w)
		fs.PrintDefaults()
		fs.SetOutput(old)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, `  tasktrack add "Buy groceries"`)
	fmt.Fprintln(w, `  tasktrack update 1 "Buy groceries and cook dinner"`)
	fmt.Fprintln(w, "  tasktrack mark-done 1")
	fmt.Fprintln(w, "  tasktrack list done")
}
