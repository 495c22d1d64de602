package san

// SquareName returns the name of the square on file and rank, both 0-based
// from a1, e.g. SquareName(4, 3) == "e4". It returns "" off the board.
func SquareName(file, rank int) string {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return ""
	}
	return string([]byte{byte('a' + file), byte('1' + rank)})
}

// ParseSquare is the inverse of SquareName.
func ParseSquare(name string) (file, rank int, ok bool) {
	if len(name) != 2 {
		return 0, 0, false
	}
	file, rank = int(name[0]-'a'), int(name[1]-'1')
	if name[0] < 'a' || file > 7 || name[1] < '1' || rank > 7 {
		return 0, 0, false
	}
	return file, rank, true
}
