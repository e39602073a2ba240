package b

type Root struct {
	ID int
}

type Other struct {
	Name string
}

type Explicit struct {
	Name string
	Root `clean:"base"`
}

type Named struct {
	R Root `clean:"base"` // want `clean:"base" requires an embedded field`
}

type Pointer struct {
	*Root `clean:"base"` // want `clean:"base" requires an embedded struct value`
}

type Both struct {
	Root `clean:"base,embed"` // want `clean options base and embed are mutually exclusive`
}

type Twice struct {
	Root  `clean:"base"`
	Other `clean:"base"` // want `struct already has a base field at line 29`
}

type Opted struct {
	Root `clean:"embed"`
	Name string
}
