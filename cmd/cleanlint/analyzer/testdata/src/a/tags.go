package a

import "io"

type Root struct {
	ID int
}

type Valid struct {
	Root
	Conn    io.Closer `clean:"skip"`
	Token   string    `clean:"readonly"`
	counter int       `clean:"property=Counter,access=public,set=protected"`
	Level   int       `clean:"access=internal" json:"level"`
	Other   string    `json:"other"`
}

type Malformed struct {
	A int `clean:"sometimes"`      // want `invalid clean tag "sometimes": option "sometimes": unknown option`
	B int `clean:"skip,skip"`      // want `option "skip": duplicate option`
	C int `clean:"access=friend"`  // want `unknown access level "friend"`
	D int `clean:"property=1st"`   // want `invalid property name`
	E int `clean:"readonly=true"`  // want `option takes no value`
}

type Useless struct {
	A int `clean:"property,readonly"` // want `readonly has no effect on property fields`
	B int `clean:"set=public"`        // want `set= requires property`
	C int `clean:"embed"`             // want `embed has no effect on named fields`
}
