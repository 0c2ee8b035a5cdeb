package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/ka2n/ecdemo/catalog"
	"github.com/mattn/go-isatty"
	"github.com/morikuni/failure/v2"
	"github.com/spf13/cobra"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the product catalog",
	Long:  "Render the static product catalog as a table. Plain markdown is printed when stdout is not a terminal.",
	Args:  cobra.NoArgs,
	RunE:  runProducts,
}

func init() {
	rootCmd.AddCommand(productsCmd)
}

func runProducts(cmd *cobra.Command, args []string) error {
	doc := productsMarkdown(catalog.Products())

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprint(cmd.OutOrStdout(), doc)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return failure.Wrap(err)
	}
	out, err := renderer.Render(doc)
	if err != nil {
		return failure.Wrap(err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func productsMarkdown(products []catalog.Product) string {
	var b strings.Builder
	b.WriteString("# 商品一覧\n\n")
	b.WriteString("| ID | | 商品 | 説明 | 価格 |\n")
	b.WriteString("|---:|---|---|---|---:|\n")
	for _, p := range products {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", p.ID, p.Icon, p.Name, p.Description, formatYen(p.Price))
	}
	return b.String()
}

func formatYen(n int) string {
	return "¥" + humanize.Comma(int64(n))
}
