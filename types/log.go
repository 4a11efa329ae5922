package types

// Log is a single event emitted by the LOG0..LOG4 opcodes.
type Log struct {
	Address Address
	Topics  []Hash
	Data    []byte

	// BlockNumber and TxHash are populated by the host (outside this
	// module's scope); the interpreter only fills Address, Topics, Data.
	BlockNumber uint64
	TxHash      Hash
	TxIndex     uint
	Index       uint
}
