// Package xsd exports IRIs of the XML Schema built-in datatypes used
// as literal datatypes throughout RDF.
package xsd

import "github.com/nazware/rdfcore"

// The XML schema built-in datatypes (xsd):
// https://dvcs.w3.org/hg/rdf/raw-file/default/rdf-concepts/index.html#xsd-datatypes
var (
	// Core types:

	String  = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#string")
	Boolean = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#boolean")
	Decimal = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#decimal")
	Integer = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#integer")

	// IEEE floating-point numbers:

	Double = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#double")
	Float  = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#float")

	// Time and date:

	Date          = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#date")
	Time          = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#time")
	DateTime      = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#dateTime")
	DateTimeStamp = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#dateTimeStamp")

	// Recurring and partial dates:

	Year              = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#gYear")
	Month             = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#gMonth")
	Day               = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#gDay")
	YearMonth         = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#gYearMonth")
	Duration          = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#Duration")
	YearMonthDuration = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#yearMonthDuration")
	DayTimeDuration   = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#dayTimeDuration")

	// Limited-range integer numbers:

	Byte = rdf.NewIRIUnsafe("http://www.w3.org/2001/XMLSchema#byte")
)
