// Package filter は一覧取得の条件・並び順・ページングを型付きで組み立てる。
//
// 条件は Expr の木で表し、String でレコードAPI形式のフィルタ文字列に、
// ToSQL でプレースホルダ付きのWHERE句に変換する。値は必ずエスケープ
// またはバインドされるので、入力値がそのまま式に混ざることはない。
package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Op string

const (
	OpEq   Op = "="
	OpNeq  Op = "!="
	OpLike Op = "~"
	OpGte  Op = ">="
	OpLte  Op = "<="
	OpIn   Op = "in"
	OpAnd  Op = "&&"
	OpOr   Op = "||"
)

// Expr は条件式の節点。比較ノードは Field/Value、In は Values、And/Or は Children を使う。
type Expr struct {
	Op       Op
	Field    string
	Value    any
	Values   []any
	Children []*Expr
}

// nil の *Expr は「条件なし」を表す。

func Eq(field string, v any) *Expr  { return &Expr{Op: OpEq, Field: field, Value: v} }
func Neq(field string, v any) *Expr { return &Expr{Op: OpNeq, Field: field, Value: v} }
func Gte(field string, v any) *Expr { return &Expr{Op: OpGte, Field: field, Value: v} }
func Lte(field string, v any) *Expr { return &Expr{Op: OpLte, Field: field, Value: v} }

// Like は大文字小文字を区別しない部分一致。空文字なら条件なし。
func Like(field string, s string) *Expr {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &Expr{Op: OpLike, Field: field, Value: s}
}

// In は値のどれかに一致。値が空なら条件なし。
func In[T any](field string, vs ...T) *Expr {
	if len(vs) == 0 {
		return nil
	}
	values := make([]any, 0, len(vs))
	for _, v := range vs {
		values = append(values, v)
	}
	return &Expr{Op: OpIn, Field: field, Values: values}
}

// And はnilを取り除いて結合する。残りが1つならそのまま返す。
func And(xs ...*Expr) *Expr { return group(OpAnd, xs) }

func Or(xs ...*Expr) *Expr { return group(OpOr, xs) }

func group(op Op, xs []*Expr) *Expr {
	children := make([]*Expr, 0, len(xs))
	for _, x := range xs {
		if x != nil {
			children = append(children, x)
		}
	}
	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	}
	return &Expr{Op: op, Children: children}
}

// Fields は式に出てくるフィールド名を重複なしで返す。
func (e *Expr) Fields() []string {
	seen := map[string]bool{}
	var out []string
	var walk func(*Expr)
	walk = func(x *Expr) {
		if x == nil {
			return
		}
		if x.Field != "" && !seen[x.Field] {
			seen[x.Field] = true
			out = append(out, x.Field)
		}
		for _, c := range x.Children {
			walk(c)
		}
	}
	walk(e)
	return out
}

// String はレコードAPI形式のフィルタ文字列にする。
func (e *Expr) String() string {
	if e == nil {
		return ""
	}
	switch e.Op {
	case OpAnd, OpOr:
		parts := make([]string, 0, len(e.Children))
		for _, c := range e.Children {
			s := c.String()
			if c.Op == OpAnd || c.Op == OpOr || (c.Op == OpIn && len(c.Values) > 1) {
				s = "(" + s + ")"
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, " "+string(e.Op)+" ")
	case OpIn:
		// レコードAPIに in は無いので = の || に展開
		parts := make([]string, 0, len(e.Values))
		for _, v := range e.Values {
			parts = append(parts, e.Field+" = "+Literal(v))
		}
		return strings.Join(parts, " || ")
	default:
		return e.Field + " " + string(e.Op) + " " + Literal(e.Value)
	}
}

// decimal.Decimal を埋め込んだ数値型（model.Money など）
type decimalLike interface {
	fmt.Stringer
	StringFixed(places int32) string
}

// Literal は値をフィルタ文字列のリテラルにする。文字列は " で囲んでエスケープする。
func Literal(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case decimal.Decimal:
		return t.String()
	case decimalLike:
		// 金額型などdecimalを埋め込んだ型は自身のString()で数値として出す
		return t.String()
	case time.Time:
		return quote(t.UTC().Format("2006-01-02 15:04:05.000Z"))
	case fmt.Stringer:
		return quote(t.String())
	case string:
		return quote(t)
	default:
		return quote(fmt.Sprint(t))
	}
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}
