package morse

// DefaultLevels is the height of the standard alphanumeric code tree:
// six levels cover every code of up to five dots and dashes, which is all
// letters A-Z and digits 0-9.
const DefaultLevels = 6

// DefaultTable is the serialized standard tree (63 entries, see Build for
// the ordering). Rune 0 fills the paths with no assigned character, such
// as the empty sequence at the root and the unused five-element codes.
var DefaultTable = []rune{
	0, 'E', 'I', 'S', 'H', '5', '4', 'V', 0, '3', 'U', 'F', 0, 0, 0, 0, '2',
	'A', 'R', 'L', 0, 0, 0, 0, 0, 'W', 'P', 0, 0, 'J', 0, '1',
	'T', 'N', 'D', 'B', '6', 0, 'X', 0, 0, 'K', 'C', 0, 0, 'Y', 0, 0,
	'M', 'G', 'Z', '7', 0, 'Q', 0, 0, 'O', 0, '8', 0, 0, '9', '0',
}
