package mirror

type AccountInfo struct {
	Account string         `json:"account"`
	Key     map[string]any `json:"key"`
	Memo    string         `json:"memo"`
}

// KeyType returns the mirror node's key type label, such as ED25519 or
// ECDSA_SECP256K1.
func (a AccountInfo) KeyType() string {
	if a.Key == nil {
		return ""
	}
	keyType, _ := a.Key["_type"].(string)
	return keyType
}

type TopicMessage struct {
	ConsensusTimestamp string     `json:"consensus_timestamp"`
	ChunkInfo          *ChunkInfo `json:"chunk_info,omitempty"`
	Message            string     `json:"message"`
	PayerAccountID     string     `json:"payer_account_id"`
	RunningHash        string     `json:"running_hash"`
	SequenceNumber     int64      `json:"sequence_number"`
	TopicID            string     `json:"topic_id"`
}

type ChunkInfo struct {
	InitialTransactionID any `json:"initial_transaction_id,omitempty"`
	Number               int `json:"number,omitempty"`
	Total                int `json:"total,omitempty"`
}

type topicMessagesResponse struct {
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
	Messages []TopicMessage `json:"messages"`
}

type Transaction struct {
	ChargedTxFee       int64   `json:"charged_tx_fee"`
	ConsensusTimestamp string  `json:"consensus_timestamp"`
	EntityID           *string `json:"entity_id"`
	MemoBase64         string  `json:"memo_base64"`
	Name               string  `json:"name"`
	Result             string  `json:"result"`
	TransactionID      string  `json:"transaction_id"`
}

type transactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}
