package delicious

import "encoding/xml"

// Wire shapes for the v1 API XML. All record data is carried in
// attributes; several of them are optional.

type postXML struct {
	Href        string `xml:"href,attr"`
	Description string `xml:"description,attr"`
	Extended    string `xml:"extended,attr"`
	Hash        string `xml:"hash,attr"`
	Meta        string `xml:"meta,attr"`
	Tags        string `xml:"tag,attr"`
	Time        string `xml:"time,attr"`
	Shared      string `xml:"shared,attr"`
}

type postsXML struct {
	XMLName xml.Name  `xml:"posts"`
	User    string    `xml:"user,attr"`
	Posts   []postXML `xml:"post"`
}

type tagXML struct {
	Tag   string `xml:"tag,attr"`
	Count string `xml:"count,attr"`
}

type tagsXML struct {
	XMLName xml.Name `xml:"tags"`
	Tags    []tagXML `xml:"tag"`
}

type dateXML struct {
	Date  string `xml:"date,attr"`
	Count string `xml:"count,attr"`
}

type datesXML struct {
	XMLName xml.Name  `xml:"dates"`
	User    string    `xml:"user,attr"`
	Dates   []dateXML `xml:"date"`
}

type bundleXML struct {
	Name string `xml:"name,attr"`
	Tags string `xml:"tags,attr"`
}

type bundlesXML struct {
	XMLName xml.Name    `xml:"bundles"`
	Bundles []bundleXML `xml:"bundle"`
}

type updateXML struct {
	XMLName xml.Name `xml:"update"`
	Time    string   `xml:"time,attr"`
}

type resultXML struct {
	XMLName xml.Name `xml:"result"`
	Code    string   `xml:"code,attr"`
	Text    string   `xml:",chardata"`
}
