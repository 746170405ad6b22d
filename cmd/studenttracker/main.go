package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ybennacer/studenttracker/internal/config"
	"github.com/ybennacer/studenttracker/internal/core"
	"github.com/ybennacer/studenttracker/internal/logging"
	"github.com/ybennacer/studenttracker/internal/store"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	st, err := store.Open(cfg.Store.Path, cfg.Store.BusyTimeout)
	if err != nil {
		slog.Error("failed to open store", "path", cfg.Store.Path, "error", err)
		os.Exit(1)
	}
	slog.Info("store opened", "path", cfg.Store.Path)

	svc := core.NewService(cfg, st)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc.StartAutoBackup(ctx, cfg.Backup.Interval)

	code := run(ctx, svc, os.Args)

	// Unconditional shutdown backup happens inside Close.
	if err := svc.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
		if code == 0 {
			code = 1
		}
	}
	os.Exit(code)
}

func printUsage() {
	fmt.Println("Usage: studenttracker <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  import  -file FILE [-group GROUP]    import students from a spreadsheet")
	fmt.Println("  export  -out FILE [-group GROUP]     export students to a spreadsheet")
	fmt.Println("  backup                               copy the store file to the backup directory")
	fmt.Println("  search  -q TEXT [-group GROUP]       search students by matricule or name")
	fmt.Println("  list    -group GROUP [-page N]       list one page of a group's students")
	fmt.Println("  groups                               list distinct group labels")
	fmt.Println("  stats   -id ID                       show a student's aggregate statistics")
	fmt.Println("  delete  -id ID                       delete a student and all related records")
}

func run(ctx context.Context, svc *core.Service, args []string) int {
	if len(args) < 2 {
		printUsage()
		return 2
	}

	switch args[1] {
	case "import":
		fs := flag.NewFlagSet("import", flag.ExitOnError)
		file := fs.String("file", "", "spreadsheet file to import (.xlsx)")
		group := fs.String("group", "", "group label overriding the file's Groupe column")
		fs.Parse(args[2:])
		if *file == "" {
			fs.Usage()
			return 2
		}
		return cmdImport(ctx, svc, *file, *group)

	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		out := fs.String("out", "", "output file path (default export_<timestamp>.xlsx)")
		group := fs.String("group", "", "restrict the export to one group")
		fs.Parse(args[2:])
		path := *out
		if path == "" {
			path = fmt.Sprintf("export_%s.xlsx", time.Now().Format("20060102_150405"))
		}
		res := svc.Export(ctx, path, *group)
		fmt.Println(res.Message)
		if !res.OK {
			return 1
		}
		return 0

	case "backup":
		res := svc.Backup()
		fmt.Println(res.Message)
		if !res.OK {
			return 1
		}
		return 0

	case "search":
		fs := flag.NewFlagSet("search", flag.ExitOnError)
		q := fs.String("q", "", "text to match against matricule or name")
		group := fs.String("group", "", "restrict the search to one group")
		fs.Parse(args[2:])
		if *q == "" {
			fs.Usage()
			return 2
		}
		students, err := svc.Search(ctx, *q, *group)
		if err != nil {
			fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
			return 1
		}
		printStudents(students)
		return 0

	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		group := fs.String("group", "", "group to list")
		page := fs.Int("page", 1, "1-indexed page number")
		size := fs.Int("size", 0, "page size (default from configuration)")
		fs.Parse(args[2:])
		if *group == "" {
			fs.Usage()
			return 2
		}
		p, err := svc.ListPage(ctx, *group, *page, *size)
		if err != nil {
			fmt.Fprintf(os.Stderr, "list failed: %v\n", err)
			return 1
		}
		printStudents(p.Students)
		fmt.Printf("Page %d of %d (%d students)\n", p.Page, p.TotalPages, p.TotalCount)
		return 0

	case "groups":
		groups, err := svc.ListGroups(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "groups failed: %v\n", err)
			return 1
		}
		for _, g := range groups {
			fmt.Println(g)
		}
		return 0

	case "stats":
		fs := flag.NewFlagSet("stats", flag.ExitOnError)
		id := fs.Int64("id", 0, "student id")
		fs.Parse(args[2:])
		if *id == 0 {
			fs.Usage()
			return 2
		}
		stats, err := svc.Stats(ctx, *id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "stats failed: %v\n", err)
			return 1
		}
		if stats == nil {
			fmt.Println("Student not found")
			return 1
		}
		printStats(stats)
		return 0

	case "delete":
		fs := flag.NewFlagSet("delete", flag.ExitOnError)
		id := fs.Int64("id", 0, "student id")
		fs.Parse(args[2:])
		if *id == 0 {
			fs.Usage()
			return 2
		}
		if err := svc.DeleteStudent(ctx, *id); err != nil {
			fmt.Fprintf(os.Stderr, "delete failed: %v\n", err)
			return 1
		}
		fmt.Println("Student deleted successfully")
		return 0

	default:
		printUsage()
		return 2
	}
}

func cmdImport(ctx context.Context, svc *core.Service, file, group string) int {
	res := svc.Import(ctx, file, group, func(p float64) {
		fmt.Printf("\rImporting... %3.0f%%", p*100)
	})
	fmt.Println()
	fmt.Println(res.Message)
	for _, e := range res.RowErrors {
		fmt.Println("  " + e)
	}
	if !res.OK {
		return 1
	}
	return 0
}

func printStudents(students []store.Student) {
	if len(students) == 0 {
		fmt.Println("No students found")
		return
	}
	fmt.Printf("%-6s %-14s %-20s %-20s %-10s %s\n", "ID", "Matricule", "Nom", "Prénom", "Section", "Groupe")
	for _, s := range students {
		fmt.Printf("%-6d %-14s %-20s %-20s %-10s %s\n",
			s.ID, s.Matricule, s.LastName, s.FirstName, s.Section, s.Group)
	}
}

func printStats(st *store.StudentStats) {
	fmt.Printf("%s %s (%s)\n", st.Student.FirstName, st.Student.LastName, st.Student.Matricule)
	fmt.Printf("  Marks:      count=%d avg=%g max=%g min=%g\n",
		st.TotalMarks, st.AvgScore, st.MaxScore, st.MinScore)
	fmt.Printf("  Attendance: %d/%d present (%.1f%%)\n",
		st.PresentCount, st.TotalClasses, st.AttendanceRate)
	for status, count := range st.AttendanceDist {
		fmt.Printf("    %s: %d\n", status, count)
	}
}
