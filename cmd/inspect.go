// =============================================================================
// ACH Decoder - Inspect Command
// =============================================================================
//
// COMMAND USAGE:
//   achdecoder inspect <file|->
//
// OUTPUT:
//   File:         payroll.ach
//   File Header:  yes (DEST BANK <- ORIGIN CO)
//   File Control: yes
//   Batches:      2
//   Entries:      3
//   Addenda:      3
//
//   #    Company           SEC  Class  Entries  Addenda
//   1    ACME CORP         PPD  200    2        3
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/ACH-decoder/internal/ach"
	"github.com/ginjaninja78/ACH-decoder/internal/export"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Summarize the batches and entries of an ACH file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := decodePath(cmd, args[0])
		if err != nil {
			return err
		}
		printInspection(cmd, args[0], file)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func printInspection(cmd *cobra.Command, path string, file *ach.File) {
	out := cmd.OutOrStdout()
	stats := file.Stats()

	fmt.Fprintf(out, "File:         %s\n", path)
	if file.FileHeader != nil {
		fmt.Fprintf(out, "File Header:  yes (%s <- %s)\n",
			display(*file.FileHeader, "im_dest_name"),
			display(*file.FileHeader, "im_orgn_name"))
	} else {
		fmt.Fprintln(out, "File Header:  no")
	}
	fmt.Fprintf(out, "File Control: %s\n", yesNo(stats.HasFileControl))
	fmt.Fprintf(out, "Batches:      %d\n", stats.Batches)
	fmt.Fprintf(out, "Entries:      %d\n", stats.Entries)
	fmt.Fprintf(out, "Addenda:      %d\n", stats.Addenda)

	if len(file.Batches) == 0 {
		return
	}

	fmt.Fprintf(out, "\n%-4s %-17s %-4s %-6s %-8s %s\n", "#", "Company", "SEC", "Class", "Entries", "Addenda")
	for i, batch := range file.Batches {
		addenda := 0
		for _, e := range batch.Entries {
			addenda += len(e.Addenda)
		}
		fmt.Fprintf(out, "%-4d %-17s %-4s %-6s %-8d %d\n",
			i+1,
			display(batch.BatchHeader, "company_name"),
			display(batch.BatchHeader, "std_ent_cls_code"),
			display(batch.BatchHeader, "serv_cls_code"),
			len(batch.Entries),
			addenda)
	}
}

// display returns a field value fit for the terminal.
func display(rec ach.Record, name string) string {
	return strings.TrimSpace(export.ToUTF8(rec.Value(name)))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
