package revert

// PanicReason is the VM panic reason carried in the low byte of a PANIC
// receipt's reason word.
type PanicReason uint8

// DefaultPanicDocsURL documents every PanicReason variant.
const DefaultPanicDocsURL = "https://docs.rs/fuel-asm/latest/fuel_asm/enum.PanicReason.html"

var panicNames = map[PanicReason]string{
	0x01: "Revert",
	0x02: "OutOfGas",
	0x03: "TransactionValidity",
	0x04: "MemoryOverflow",
	0x05: "ArithmeticOverflow",
	0x06: "ContractNotFound",
	0x07: "MemoryOwnership",
	0x08: "NotEnoughBalance",
	0x09: "ExpectedInternalContext",
	0x0a: "AssetIdNotFound",
	0x0b: "InputNotFound",
	0x0c: "OutputNotFound",
	0x0d: "WitnessNotFound",
	0x0e: "TransactionMaturity",
	0x0f: "InvalidMetadataIdentifier",
	0x10: "MalformedCallStructure",
	0x11: "ReservedRegisterNotWritable",
	0x12: "InvalidFlags",
	0x13: "InvalidImmediateValue",
	0x14: "ExpectedCoinInput",
	0x15: "EcalError",
	0x16: "MemoryWriteOverlap",
	0x17: "ContractNotInInputs",
	0x18: "InternalBalanceOverflow",
	0x19: "ContractMaxSize",
	0x1a: "ExpectedUnallocatedStack",
	0x1b: "MaxStaticContractsReached",
	0x1c: "TransferAmountCannotBeZero",
	0x1d: "ExpectedOutputVariable",
	0x1e: "ExpectedParentInternalContext",
	0x1f: "PredicateReturnedNonOne",
	0x20: "ContractIdAlreadyDeployed",
	0x21: "ContractMismatch",
	0x22: "MessageDataTooLong",
	0x23: "ArithmeticError",
	0x24: "ContractInstructionNotAllowed",
	0x25: "TransferZeroCoins",
	0x26: "InvalidInstruction",
	0x27: "MemoryNotExecutable",
	0x28: "PolicyIsNotSet",
	0x29: "PolicyNotFound",
	0x2a: "TooManyReceipts",
	0x2b: "BalanceOverflow",
	0x2c: "InvalidBlockHeight",
	0x2d: "TooManySlots",
	0x2e: "ExpectedNestedCaller",
	0x2f: "MemoryGrowthOverlap",
	0x30: "UninitalizedMemoryAccess",
	0x31: "OverridingConsensusParameters",
	0x32: "UnknownStateTransactionBytecodeRoot",
	0x33: "OverridingStateTransactionBytecode",
	0x34: "BytecodeAlreadyUploaded",
	0x35: "ThePartIsNotSequentiallyConnected",
	0x36: "BlobNotFound",
	0x37: "BlobIdAlreadyUploaded",
	0x38: "GasCostNotDefined",
}

// Name returns the variant name, or false for codes outside the table.
func (p PanicReason) Name() (string, bool) {
	n, ok := panicNames[p]
	return n, ok
}

func (p PanicReason) String() string {
	if n, ok := panicNames[p]; ok {
		return n
	}
	return "UnknownPanicReason"
}
