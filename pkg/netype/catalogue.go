// Package netype contiene la taxonomía de tipos de entidades nombradas usada
// por la herramienta de anotación: códigos de dos caracteres (jerarquía del
// Czech Named Entity Corpus) y la etiqueta legible que se muestra al anotador.
package netype

// =============================================================================
// Direcciones (a)
// =============================================================================

const (
	StreetNumber Code = "ah" // street numbers
	PhoneNumber  Code = "at" // phone/fax numbers
	ZipCode      Code = "az" // zip codes
)

// =============================================================================
// Nombres geográficos (g)
// =============================================================================

const (
	State             Code = "gc"
	Hydronym          Code = "gh"
	NatureArea        Code = "gl"
	UrbanPart         Code = "gq"
	TerritorialName   Code = "gr"
	Street            Code = "gs"
	Continent         Code = "gt"
	City              Code = "gu"
	UnderspecifiedGeo Code = "g_"
)

// =============================================================================
// Instituciones (i)
// =============================================================================

const (
	Conference                Code = "ia"
	CulturalInstitution       Code = "ic"
	Company                   Code = "if"
	GovernmentInstitution     Code = "io"
	UnderspecifiedInstitution Code = "i_"
)

// =============================================================================
// Medios y direcciones electrónicas (m)
// =============================================================================

const (
	Email        Code = "me"
	InternetLink Code = "mi"
	Periodical   Code = "mn"
	Broadcaster  Code = "ms" // radio y TV
)

// =============================================================================
// Expresiones numéricas (n)
// =============================================================================

const (
	Age                  Code = "na"
	PartNumber           Code = "nb" // vol./pág./cap./sec./fig.
	CardinalNumber       Code = "nc"
	Itemizer             Code = "ni"
	OrdinalNumber        Code = "no"
	SportScore           Code = "ns"
	UnderspecifiedNumber Code = "n_"
)

// =============================================================================
// Artefactos (o)
// =============================================================================

const (
	CulturalArtifact       Code = "oa"
	MeasureUnit            Code = "oe"
	CurrencyUnit           Code = "om"
	Product                Code = "op"
	Directive              Code = "or" // directivas, normas
	UnderspecifiedArtifact Code = "o_"
)

// =============================================================================
// Nombres de persona (p)
// =============================================================================

const (
	InhabitantName       Code = "pc"
	Title                Code = "pd" // títulos (académicos)
	FirstName            Code = "pf"
	SecondName           Code = "pm"
	ReligiousPerson      Code = "pp"
	Surname              Code = "ps"
	UnderspecifiedPerson Code = "p_"
)

// =============================================================================
// Expresiones temporales (t)
// =============================================================================

const (
	Day   Code = "td"
	Feast Code = "tf"
	Hour  Code = "th"
	Month Code = "tm"
	Year  Code = "ty"
)

// catalogue es la tabla completa en el orden en que la publica la herramienta.
var catalogue = []Category{
	{StreetNumber, "street numbers"},
	{PhoneNumber, "phone/fax numbers"},
	{ZipCode, "zip codes"},
	{State, "states"},
	{Hydronym, "hydronyms"},
	{NatureArea, "nature areas / objects"},
	{UrbanPart, "urban parts"},
	{TerritorialName, "territorial names"},
	{Street, "streets, squares"},
	{Continent, "continents"},
	{City, "cities/towns"},
	{UnderspecifiedGeo, "underspecified geographical name"},
	{Conference, "conferences/contests"},
	{CulturalInstitution, "cult./educ./scient. inst."},
	{Company, "companies, concerns..."},
	{GovernmentInstitution, "government/political inst."},
	{UnderspecifiedInstitution, "underspecified institutions"},
	{Email, "email address"},
	{InternetLink, "internet links"},
	{Periodical, "periodical"},
	{Broadcaster, "radio and TV stations"},
	{Age, "age"},
	{PartNumber, "vol./page/chap./sec./fig. numbers"},
	{CardinalNumber, "cardinal numbers"},
	{Itemizer, "itemizer"},
	{OrdinalNumber, "ordinal numbers"},
	{SportScore, "sport score"},
	{UnderspecifiedNumber, "underspecified number expression"},
	{CulturalArtifact, "cultural artifacts (books, movies)"},
	{MeasureUnit, "measure units"},
	{CurrencyUnit, "currency units"},
	{Product, "products"},
	{Directive, "directives, norms"},
	{UnderspecifiedArtifact, "underspecified artifact name"},
	{InhabitantName, "inhabitant names"},
	{Title, "(academic) titles"},
	{FirstName, "first names"},
	{SecondName, "second names"},
	{ReligiousPerson, "relig./myth persons"},
	{Surname, "surnames"},
	{UnderspecifiedPerson, "underspecified personal name"},
	{Day, "days"},
	{Feast, "feasts"},
	{Hour, "hours"},
	{Month, "months"},
	{Year, "years"},
}

// defaultTable se construye una sola vez al iniciar el proceso; un catálogo
// corrupto aborta el arranque.
var defaultTable = MustNew(catalogue...)

// Default devuelve la taxonomía estándar. El puntero es compartido y de solo lectura.
func Default() *Table { return defaultTable }
