package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/tesoreria/internal/page"
)

const pageDelta = 1

func pagesCmd() *cobra.Command {
	var (
		delta int
		jump  string
	)

	cmd := &cobra.Command{
		Use:   "pages <current> <total>",
		Short: "Print the page strip for a list position",
		Long: `Print the compact page strip shown under every list. With --jump, the
free-form input is reduced to digits and clamped into range first, the
same way the jump-to-page box does it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid current page %q", args[0])
			}

			total, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid total pages %q", args[1])
			}

			if cmd.Flags().Changed("jump") {
				current = page.Jump(jump, total)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), strip(page.Window(current, total, delta), page.Clamp(current, total)))

			return err
		},
	}

	cmd.Flags().IntVar(&delta, "delta", pageDelta, "pages shown on each side of the current one")
	cmd.Flags().StringVar(&jump, "jump", "", "jump-to-page input to resolve")

	return cmd
}

// strip renders a page window as "1 … 4 [5] 6 … 10".
func strip(items []page.Item, current int) string {
	parts := make([]string, 0, len(items))

	for _, it := range items {
		switch {
		case it.Ellipsis:
			parts = append(parts, "…")
		case it.Page == current:
			parts = append(parts, "["+strconv.Itoa(it.Page)+"]")
		default:
			parts = append(parts, strconv.Itoa(it.Page))
		}
	}

	return strings.Join(parts, " ")
}

func pageFooter(m page.Meta) string {
	if !m.Paginated || m.TotalPages <= 1 {
		return subtleStyle.Render(fmt.Sprintf("%d registros", m.Total))
	}

	return subtleStyle.Render(fmt.Sprintf("página %s · %d registros", strip(page.Window(m.Page, m.TotalPages, pageDelta), m.Page), m.Total))
}
