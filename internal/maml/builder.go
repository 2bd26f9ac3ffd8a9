package maml

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"mamlgen/internal/logger"
	"mamlgen/internal/model"
	"mamlgen/internal/xmldoc"
	"mamlgen/internal/xmltree"
)

// Options controls optional document sections
type Options struct {
	// Extended adds command:parameters (with one duplicate entry per alias),
	// command:inputTypes and command:returnValues after the syntax section
	Extended bool
}

// Build joins the commands with their documentation. docs may be nil.
// Commands are written in the given order.
func Build(commands []*model.Command, docs *xmldoc.Index, opts Options) *Document {
	root := xmltree.NewElement("helpItems")
	root.SetAttr("xmlns", NamespaceMSH)
	root.SetAttr("schema", "maml")
	root.SetAttr("xmlns:maml", NamespaceMAML)
	root.SetAttr("xmlns:dev", NamespaceDev)
	root.SetAttr("xmlns:command", NamespaceCommand)

	doc := &Document{Root: root, Commands: make([]CommandHelp, 0, len(commands))}
	for _, cmd := range commands {
		b := &commandBuilder{cmd: cmd, docs: docs, entry: docs.Type(cmd.FullName), opts: opts}
		if b.entry == nil {
			logger.Debug("No documentation for command", "command", cmd.Name(), "type", cmd.FullName)
		}
		el, help := b.build()
		root.Add(xmltree.Comment(fmt.Sprintf("Command:  %s - %s", cmd.Name(), cmd.FullName)), el)
		doc.Commands = append(doc.Commands, help)
	}
	return doc
}

type commandBuilder struct {
	cmd   *model.Command
	docs  *xmldoc.Index
	entry *xmldoc.Entry
	opts  Options
}

func (b *commandBuilder) build() (*xmltree.Element, CommandHelp) {
	cmd := b.cmd
	help := CommandHelp{
		Name:       cmd.Name(),
		Verb:       cmd.Verb,
		Noun:       cmd.Noun,
		TypeName:   cmd.FullName,
		Documented: b.entry != nil,
	}

	details := xmltree.NewElement("command:details",
		xmltree.TextElement("command:name", cmd.Name()),
		xmltree.TextElement("command:verb", cmd.Verb),
		xmltree.TextElement("command:noun", cmd.Noun),
	)
	el := xmltree.NewElement("command:command", details)

	if b.entry != nil {
		synopsis := description(b.entry.Summary)
		details.Add(synopsis)
		desc := description(b.entry.Remarks)
		el.Add(desc)
		help.Synopsis = paragraphs(synopsis)
		help.Description = paragraphs(desc)
	}

	syntax, items := b.syntax()
	el.Add(syntax)
	help.Syntax = items

	for _, p := range cmd.Parameters {
		help.Parameters = append(help.Parameters, b.parameterHelp(p, model.AllParameterSets))
	}
	for _, p := range cmd.PipelineParameters() {
		help.Inputs = append(help.Inputs, SimpleTypeName(p.Type))
	}
	for _, t := range cmd.OutputTypes {
		if t.IsVoid() {
			continue
		}
		help.Outputs = append(help.Outputs, SimpleTypeName(t))
	}

	if b.opts.Extended {
		el.Add(b.parameters(), b.inputTypes(), b.returnValues())
	}
	return el, help
}

// syntaxSets returns the parameter sets rendered in the syntax section. The
// all-sets sentinel is dropped when concrete sets exist; a command without
// parameters has no sets and so no syntax items.
func (b *commandBuilder) syntaxSets() []string {
	sets := b.cmd.ParameterSetNames()
	if len(sets) > 1 {
		concrete := sets[:0:0]
		for _, s := range sets {
			if s != model.AllParameterSets {
				concrete = append(concrete, s)
			}
		}
		sets = concrete
	}
	return sets
}

func (b *commandBuilder) syntax() (*xmltree.Element, []SyntaxHelp) {
	syntax := xmltree.NewElement("command:syntax")
	var items []SyntaxHelp

	for _, set := range b.syntaxSets() {
		item := xmltree.NewElement("command:syntaxItem", xmltree.TextElement("maml:name", b.cmd.Name()))
		sh := SyntaxHelp{Set: set}

		for _, p := range orderedParameters(b.cmd.ParametersFor(set), set) {
			item.Add(xmltree.Comment("Parameter:  "+p.Name), b.parameter(p, set))
			sh.Parameters = append(sh.Parameters, b.parameterHelp(p, set))
		}

		syntax.Add(xmltree.Comment("Parameter Set Name:  "+set), item)
		items = append(items, sh)
	}
	return syntax, items
}

// orderedParameters sorts by position (named last), then required first,
// then name
func orderedParameters(params []*model.Parameter, set string) []*model.Parameter {
	ordered := append([]*model.Parameter(nil), params...)
	sort.SliceStable(ordered, func(i, j int) bool {
		bi, bj := ordered[i].Binding(set), ordered[j].Binding(set)
		if pi, pj := positionKey(bi), positionKey(bj); pi != pj {
			return pi < pj
		}
		if bi.Required != bj.Required {
			return bi.Required
		}
		return ordered[i].Name < ordered[j].Name
	})
	return ordered
}

func positionKey(b model.SetBinding) int {
	if !b.Positional() {
		return math.MaxInt
	}
	return b.Position
}

func (b *commandBuilder) parameter(p *model.Parameter, set string) *xmltree.Element {
	binding := p.Binding(set)

	el := xmltree.NewElement("command:parameter")
	el.SetAttr("required", strconv.FormatBool(binding.Required))
	el.SetAttr("globbing", strconv.FormatBool(p.Globbing))
	el.SetAttr("pipelineInput", pipelineInput(binding))
	el.SetAttr("position", position(binding))

	value := xmltree.TextElement("command:parameterValue", SimpleTypeName(p.Type))
	value.SetAttr("required", "true")

	el.Add(
		xmltree.TextElement("maml:name", p.Name),
		b.parameterDescription(p),
		value,
	)
	return el
}

// parameterDescription concatenates the summary and remarks of the
// "<type>.<member>" property entry; enum parameters always end with a
// "Possible values" paragraph
func (b *commandBuilder) parameterDescription(p *model.Parameter) *xmltree.Element {
	var desc *xmltree.Element
	if prop := b.docs.Property(b.cmd.FullName + "." + p.Name); prop != nil && (prop.Summary != nil || prop.Remarks != nil) {
		desc = description(prop.Summary, prop.Remarks)
	}
	if p.IsEnum() {
		if desc == nil {
			desc = xmltree.NewElement("maml:description")
		}
		desc.Add(xmltree.TextElement("maml:para", "Possible values: "+strings.Join(p.EnumValues, ", ")))
	}
	return desc
}

func (b *commandBuilder) parameterHelp(p *model.Parameter, set string) ParameterHelp {
	binding := p.Binding(set)
	return ParameterHelp{
		Name:          p.Name,
		Type:          SimpleTypeName(p.Type),
		Required:      binding.Required,
		Globbing:      p.Globbing,
		PipelineInput: pipelineInput(binding),
		Position:      position(binding),
		Aliases:       p.Aliases,
		EnumValues:    p.EnumValues,
		Description:   paragraphs(b.parameterDescription(p)),
	}
}

// parameters renders every parameter once with its all-sets binding,
// followed by one copy per alias
func (b *commandBuilder) parameters() *xmltree.Element {
	section := xmltree.NewElement("command:parameters")
	for _, p := range b.cmd.Parameters {
		el := b.parameter(p, model.AllParameterSets)
		if len(p.Aliases) > 0 {
			el.SetAttr("aliases", strings.Join(p.Aliases, ","))
		}
		el.Add(devType(p.Type))
		if p.IsEnum() {
			group := xmltree.NewElement("command:parameterValueGroup")
			for _, v := range p.EnumValues {
				value := xmltree.TextElement("command:parameterValue", v)
				value.SetAttr("required", "false")
				value.SetAttr("variableLength", "false")
				group.Add(value)
			}
			el.Add(group)
		}
		section.Add(xmltree.Comment("Parameter:  "+p.Name), el)

		for _, alias := range p.Aliases {
			section.Add(aliasEntry(el, p.Name, alias))
		}
	}
	return section
}

func aliasEntry(param *xmltree.Element, name, alias string) *xmltree.Element {
	el := param.Clone()
	if n := el.Element("maml:name"); n != nil {
		n.Children = []xmltree.Node{xmltree.Text(alias)}
	}
	desc := el.Element("maml:description")
	if desc == nil {
		desc = xmltree.NewElement("maml:description")
		insertAfter(el, "maml:name", desc)
	}
	desc.Add(xmltree.TextElement("maml:para", fmt.Sprintf("This is an alias of the %s parameter.", name)))
	return el
}

func insertAfter(parent *xmltree.Element, name string, child xmltree.Node) {
	for i, c := range parent.Children {
		if el, ok := c.(*xmltree.Element); ok && el.Name == name {
			rest := append([]xmltree.Node{child}, parent.Children[i+1:]...)
			parent.Children = append(parent.Children[:i+1], rest...)
			return
		}
	}
	parent.Add(child)
}

func (b *commandBuilder) inputTypes() *xmltree.Element {
	section := xmltree.NewElement("command:inputTypes")
	for _, p := range b.cmd.PipelineParameters() {
		section.Add(xmltree.NewElement("command:inputType", devType(p.Type)))
	}
	return section
}

func (b *commandBuilder) returnValues() *xmltree.Element {
	section := xmltree.NewElement("command:returnValues")
	for _, t := range b.cmd.OutputTypes {
		if t.IsVoid() {
			continue
		}
		section.Add(
			xmltree.Comment("OutputType: "+SimpleTypeName(t)),
			xmltree.NewElement("command:returnValue", devType(t)),
		)
	}
	return section
}

func devType(t model.TypeRef) *xmltree.Element {
	return xmltree.NewElement("dev:type",
		xmltree.TextElement("maml:name", t.FullName),
		xmltree.NewElement("maml:uri"),
	)
}

// description converts doc content into a maml:description. Each non-blank
// text node becomes a paragraph with whitespace collapsed; para elements are
// copied without their attributes and their markup stays unqualified.
func description(parts ...[]xmltree.Node) *xmltree.Element {
	desc := xmltree.NewElement("maml:description")
	for _, nodes := range parts {
		for _, n := range nodes {
			switch v := n.(type) {
			case xmltree.Text:
				if v.IsBlank() {
					continue
				}
				desc.Add(xmltree.TextElement("maml:para", strings.Join(strings.Fields(string(v)), " ")))
			case *xmltree.Element:
				if v.Name != "para" {
					continue
				}
				desc.Add(&xmltree.Element{Name: "maml:para", Children: unqualified(v.Children)})
			}
		}
	}
	return desc
}

// unqualified clones doc markup nested in a para. Its elements carry no
// namespace, so each top-level one resets the default namespace of helpItems.
func unqualified(nodes []xmltree.Node) []xmltree.Node {
	cloned := xmltree.CloneNodes(nodes)
	for _, n := range cloned {
		if el, ok := n.(*xmltree.Element); ok {
			el.SetAttr("xmlns", "")
		}
	}
	return cloned
}

func paragraphs(desc *xmltree.Element) []string {
	if desc == nil {
		return nil
	}
	var result []string
	for _, para := range desc.Elements("maml:para") {
		result = append(result, xmltree.PlainText(para.Children))
	}
	return result
}

func pipelineInput(b model.SetBinding) string {
	switch {
	case b.PipelineByValue && b.PipelineByPropertyName:
		return "true (ByValue, ByPropertyName)"
	case b.PipelineByValue:
		return "true (ByValue)"
	case b.PipelineByPropertyName:
		return "true (ByPropertyName)"
	}
	return "false"
}

func position(b model.SetBinding) string {
	if !b.Positional() {
		return "named"
	}
	return strconv.Itoa(b.Position)
}
