package pixel

// Transpose4x4 transposes m in place, turning four SoA rows (x, y, z, w
// of four lanes) into four AoS pixels and back.
func Transpose4x4(m *[4][4]float32) {
	m[0][1], m[1][0] = m[1][0], m[0][1]
	m[0][2], m[2][0] = m[2][0], m[0][2]
	m[0][3], m[3][0] = m[3][0], m[0][3]
	m[1][2], m[2][1] = m[2][1], m[1][2]
	m[1][3], m[3][1] = m[3][1], m[1][3]
	m[2][3], m[3][2] = m[3][2], m[2][3]
}
