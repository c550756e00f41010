package console

import (
	"io"
	"strconv"
	"time"

	"rpc-lab/domain"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

// PrintTransactions renders a transaction history, one row per transaction.
func PrintTransactions(out io.Writer, txs []domain.Transaction) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Transaction", "User", "Amount", "Created at"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	table.AppendBulk(lo.Map(txs, func(tx domain.Transaction, _ int) []string {
		return []string{
			tx.ID.String(),
			tx.UserID,
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
			tx.CreatedAt.Format(time.RFC3339),
		}
	}))
	table.Render()
}
