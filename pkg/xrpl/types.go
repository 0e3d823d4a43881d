package xrpl

import (
	"encoding/json"
	"strings"
)

type AccountData struct {
	Account  string `json:"Account"`
	Balance  string `json:"Balance"`
	Sequence uint32 `json:"Sequence"`
}

type AccountInfoResult struct {
	AccountData        AccountData `json:"account_data"`
	LedgerCurrentIndex uint32      `json:"ledger_current_index"`
	Validated          bool        `json:"validated"`
}

type FeeDrops struct {
	BaseFee       string `json:"base_fee"`
	MedianFee     string `json:"median_fee"`
	MinimumFee    string `json:"minimum_fee"`
	OpenLedgerFee string `json:"open_ledger_fee"`
}

type FeeResult struct {
	Drops              FeeDrops `json:"drops"`
	LedgerCurrentIndex uint32   `json:"ledger_current_index"`
}

type SubmitResult struct {
	EngineResult        string `json:"engine_result"`
	EngineResultCode    int    `json:"engine_result_code"`
	EngineResultMessage string `json:"engine_result_message"`
	Accepted            bool   `json:"accepted"`
	Applied             bool   `json:"applied"`
	Broadcast           bool   `json:"broadcast"`
	Queued              bool   `json:"queued"`
	TxJSON              struct {
		Hash string `json:"hash"`
	} `json:"tx_json"`
}

type TransactionMeta struct {
	TransactionResult string `json:"TransactionResult"`
}

type TxResult struct {
	Hash        string          `json:"hash"`
	LedgerIndex uint32          `json:"ledger_index"`
	Validated   bool            `json:"validated"`
	Date        int64           `json:"date"`
	Meta        json.RawMessage `json:"meta"`
	Memos       []struct {
		Memo struct {
			MemoType string `json:"MemoType"`
			MemoData string `json:"MemoData"`
		} `json:"Memo"`
	} `json:"Memos"`
}

// TransactionResult returns the engine result recorded in the metadata.
// Binary metadata is not decoded.
func (r TxResult) TransactionResult() string {
	if len(r.Meta) == 0 || strings.HasPrefix(strings.TrimSpace(string(r.Meta)), `"`) {
		return ""
	}
	var meta TransactionMeta
	if err := json.Unmarshal(r.Meta, &meta); err != nil {
		return ""
	}
	return meta.TransactionResult
}

type LedgerResult struct {
	LedgerIndex uint32 `json:"ledger_index"`
	Validated   bool   `json:"validated"`
}

type rpcRequest struct {
	Method string `json:"method"`
	Params []any  `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
}

type rpcStatus struct {
	Status       string `json:"status"`
	Error        string `json:"error"`
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}
