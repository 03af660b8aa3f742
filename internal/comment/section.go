package comment

// Section is one typed piece of a documentation comment. The four variants
// form a closed union: Brief, Details, Inline and List. Sections are cloned
// when ownership transfers into a documentation builder, since the comment
// that produced them may be discarded or reused independently.
type Section interface {
	// Clone returns a deep copy.
	Clone() Section

	section()
}

// Brief is the one-line summary of an entity or file.
type Brief struct {
	Text string
}

// Details is one paragraph of extended free-form description.
type Details struct {
	Text string
}

// Inline is a single keyed command, e.g. a named parameter or a return-value
// description. Command carries the command name plus its argument, such as
// "param x" or "returns".
type Inline struct {
	Command string
	Text    string
}

// ListItem is one entry of a List section. Key is empty for unkeyed items.
type ListItem struct {
	Key  string
	Text string
}

// List is an ordered sequence of keyed or unkeyed items.
type List struct {
	Items []ListItem
}

func (s *Brief) Clone() Section   { c := *s; return &c }
func (s *Details) Clone() Section { c := *s; return &c }
func (s *Inline) Clone() Section  { c := *s; return &c }

func (s *List) Clone() Section {
	items := make([]ListItem, len(s.Items))
	copy(items, s.Items)
	return &List{Items: items}
}

func (*Brief) section()   {}
func (*Details) section() {}
func (*Inline) section()  {}
func (*List) section()    {}
