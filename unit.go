package dawgo

// precisionMask clamps node and leaf indices to 31 bits.
const precisionMask uint32 = 0x7FFFFFFF

const hasLeafBit uint32 = 1 << 8
const extensionBit uint32 = 1 << 9

// unitHasLeaf reports whether the node whose transition arrives at this
// cell terminates a key.
func unitHasLeaf(u uint32) bool {
	return (u>>8)&1 == 1
}

// unitValue reads u as a leaf cell's stored value.
func unitValue(u uint32) uint32 {
	return u & precisionMask
}

// unitLabel reads the byte consumed on the transition this cell represents.
func unitLabel(u uint32) uint32 {
	return u & 0xFF
}

// unitOffset extracts the XOR-delta used to locate this node's children
// and leaf cell. Bit 9 selects between the raw 21-bit field and a x32
// extension for nodes with many children.
func unitOffset(u uint32) uint32 {
	return (u >> 10) << (((u >> 9) & 1) * 5)
}
