package storage

import (
	"strconv"
	"strings"
	"time"

	pb "rpc-lab/proto/services"

	"github.com/mama165/sdk-go/database"
)

// InspectorEndpoint is where the debug inspector lists the ledger.
const InspectorEndpoint = "/inspect"

// LedgerRow renders a ledger entry for the debug inspector.
func LedgerRow(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	if !strings.HasPrefix(key, transactionPrefix) {
		return row
	}

	var msg pb.TransactionResponse
	if err := msg.UnmarshalWire(val); err != nil {
		row.Detail = "Error: unmarshal failed"
		return row
	}
	row.Type = "TRANSACTION"
	row.EntityID = msg.GetTransactionId()
	row.Namespace = msg.GetUserId()
	row.Timestamp = msg.GetCreatedAt().AsTime().Format(time.RFC3339Nano)
	row.Detail = strconv.FormatFloat(msg.GetAmount(), 'f', 2, 64)
	return row
}
