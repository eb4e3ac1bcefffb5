package dynamo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// fakeClient is an in-memory stand-in for the DynamoDB API. It stores items
// per table, applies SET and ADD update expressions, honors the
// attribute_exists condition, and evaluates the filter expressions the
// adapters generate (equality, AND, OR, BETWEEN).
type fakeClient struct {
	mu     sync.Mutex
	tables map[string]*fakeTable

	// throttleUpdates makes the next N UpdateItem calls fail with a
	// throughput exception. notFoundUpdates does the same with a
	// resource-not-found error.
	throttleUpdates int
	notFoundUpdates int
	updateCalls     int
}

type fakeTable struct {
	keyAttr string
	items   map[string]map[string]types.AttributeValue
}

func newFakeClient() *fakeClient {
	return &fakeClient{tables: map[string]*fakeTable{}}
}

func (f *fakeClient) addTable(name, keyAttr string) {
	f.tables[name] = &fakeTable{keyAttr: keyAttr, items: map[string]map[string]types.AttributeValue{}}
}

func (f *fakeClient) table(name *string) (*fakeTable, error) {
	t, ok := f.tables[aws.ToString(name)]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("table not found: " + aws.ToString(name))}
	}
	return t, nil
}

func attrKey(av types.AttributeValue) string {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return "S:" + v.Value
	case *types.AttributeValueMemberN:
		return "N:" + v.Value
	default:
		return fmt.Sprintf("%v", av)
	}
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

func (f *fakeClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := f.table(params.TableName)
	if err != nil {
		return nil, err
	}
	key, ok := params.Item[t.keyAttr]
	if !ok {
		return nil, fmt.Errorf("item missing key attribute %s", t.keyAttr)
	}
	t.items[attrKey(key)] = copyItem(params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeClient) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := f.table(params.TableName)
	if err != nil {
		return nil, err
	}
	item, ok := t.items[attrKey(params.Key[t.keyAttr])]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: copyItem(item)}, nil
}

func (f *fakeClient) DeleteItem(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := f.table(params.TableName)
	if err != nil {
		return nil, err
	}
	delete(t.items, attrKey(params.Key[t.keyAttr]))
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeClient) Scan(_ context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := f.table(params.TableName)
	if err != nil {
		return nil, err
	}
	var filter *filterNode
	if params.FilterExpression != nil {
		filter, err = parseFilter(aws.ToString(params.FilterExpression))
		if err != nil {
			return nil, err
		}
	}
	var items []map[string]types.AttributeValue
	for _, item := range t.items {
		if filter != nil {
			match, err := filter.eval(item, params.ExpressionAttributeNames, params.ExpressionAttributeValues)
			if err != nil {
				return nil, err
			}
			if !match {
				continue
			}
		}
		items = append(items, copyItem(item))
	}
	return &dynamodb.ScanOutput{Items: items}, nil
}

func (f *fakeClient) UpdateItem(_ context.Context, params *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if f.throttleUpdates > 0 {
		f.throttleUpdates--
		return nil, &types.ProvisionedThroughputExceededException{Message: aws.String("throttled")}
	}
	if f.notFoundUpdates > 0 {
		f.notFoundUpdates--
		return nil, &types.ResourceNotFoundException{Message: aws.String("not found")}
	}
	t, err := f.table(params.TableName)
	if err != nil {
		return nil, err
	}

	expr := aws.ToString(params.UpdateExpression)
	keyStr := attrKey(params.Key[t.keyAttr])
	item, exists := t.items[keyStr]

	if strings.HasPrefix(expr, "ADD ") {
		return f.applyAdd(t, params, expr, keyStr, item, exists)
	}

	if params.ConditionExpression != nil && !exists {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
	}
	if !exists {
		item = copyItem(params.Key)
	}
	for _, clause := range strings.Split(strings.TrimPrefix(expr, "SET "), ", ") {
		parts := strings.SplitN(clause, " = ", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("bad SET clause %q", clause)
		}
		attr := resolveName(parts[0], params.ExpressionAttributeNames)
		val, ok := params.ExpressionAttributeValues[parts[1]]
		if !ok {
			return nil, fmt.Errorf("unbound value placeholder %q", parts[1])
		}
		item[attr] = val
	}
	t.items[keyStr] = item
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeClient) applyAdd(t *fakeTable, params *dynamodb.UpdateItemInput, expr, keyStr string, item map[string]types.AttributeValue, exists bool) (*dynamodb.UpdateItemOutput, error) {
	fields := strings.Fields(strings.TrimPrefix(expr, "ADD "))
	if len(fields) != 2 {
		return nil, fmt.Errorf("bad ADD expression %q", expr)
	}
	attr := resolveName(fields[0], params.ExpressionAttributeNames)
	inc, ok := params.ExpressionAttributeValues[fields[1]].(*types.AttributeValueMemberN)
	if !ok {
		return nil, fmt.Errorf("ADD needs a numeric operand in %q", expr)
	}
	if !exists {
		item = copyItem(params.Key)
	}
	current := decimal.Zero
	if cur, ok := item[attr].(*types.AttributeValueMemberN); ok {
		current, _ = decimal.NewFromString(cur.Value)
	}
	delta, err := decimal.NewFromString(inc.Value)
	if err != nil {
		return nil, err
	}
	next := current.Add(delta)
	item[attr] = &types.AttributeValueMemberN{Value: next.String()}
	t.items[keyStr] = item
	return &dynamodb.UpdateItemOutput{
		Attributes: map[string]types.AttributeValue{
			attr: &types.AttributeValueMemberN{Value: next.String()},
		},
	}, nil
}

func resolveName(token string, names map[string]string) string {
	if strings.HasPrefix(token, "#") {
		if real, ok := names[token]; ok {
			return real
		}
	}
	return token
}

// filterNode is a parsed filter expression. The expression builder emits
// fully parenthesized trees over "=", BETWEEN, AND and OR, which is all the
// grammar the evaluator needs.
type filterNode struct {
	op          string // "=", "BETWEEN", "AND", "OR"
	left, right *filterNode
	name        string // leaf: attribute name token
	value       string // leaf: value placeholder
	upper       string // BETWEEN upper bound placeholder
}

func parseFilter(expr string) (*filterNode, error) {
	p := &filterParser{tokens: tokenizeFilter(expr)}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("trailing tokens in filter %q", expr)
	}
	return node, nil
}

func tokenizeFilter(expr string) []string {
	expr = strings.ReplaceAll(expr, "(", " ( ")
	expr = strings.ReplaceAll(expr, ")", " ) ")
	return strings.Fields(expr)
}

type filterParser struct {
	tokens []string
	pos    int
}

func (p *filterParser) peek() string {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return ""
}

func (p *filterParser) next() string {
	tok := p.peek()
	p.pos++
	return tok
}

func (p *filterParser) parseOr() (*filterNode, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek() == "OR" {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &filterNode{op: "OR", left: left, right: right}
	}
	return left, nil
}

func (p *filterParser) parseAnd() (*filterNode, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peek() == "AND" {
		p.next()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &filterNode{op: "AND", left: left, right: right}
	}
	return left, nil
}

func (p *filterParser) parsePrimary() (*filterNode, error) {
	if p.peek() == "(" {
		p.next()
		node, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if tok := p.next(); tok != ")" {
			return nil, fmt.Errorf("expected ) got %q", tok)
		}
		return node, nil
	}
	name := p.next()
	switch op := p.next(); op {
	case "=":
		return &filterNode{op: "=", name: name, value: p.next()}, nil
	case "BETWEEN":
		lo := p.next()
		if tok := p.next(); tok != "AND" {
			return nil, fmt.Errorf("expected AND in BETWEEN, got %q", tok)
		}
		return &filterNode{op: "BETWEEN", name: name, value: lo, upper: p.next()}, nil
	default:
		return nil, fmt.Errorf("unsupported operator %q", op)
	}
}

func (n *filterNode) eval(item map[string]types.AttributeValue, names map[string]string, values map[string]types.AttributeValue) (bool, error) {
	switch n.op {
	case "AND":
		left, err := n.left.eval(item, names, values)
		if err != nil || !left {
			return false, err
		}
		return n.right.eval(item, names, values)
	case "OR":
		left, err := n.left.eval(item, names, values)
		if err != nil || left {
			return left, err
		}
		return n.right.eval(item, names, values)
	case "=":
		got, ok := item[resolveName(n.name, names)]
		if !ok {
			return false, nil
		}
		want, ok := values[n.value]
		if !ok {
			return false, fmt.Errorf("unbound value placeholder %q", n.value)
		}
		return attrEqual(got, want), nil
	case "BETWEEN":
		got, ok := item[resolveName(n.name, names)]
		if !ok {
			return false, nil
		}
		lo, okLo := values[n.value]
		hi, okHi := values[n.upper]
		if !okLo || !okHi {
			return false, fmt.Errorf("unbound BETWEEN bounds %q %q", n.value, n.upper)
		}
		return attrCompare(got, lo) >= 0 && attrCompare(got, hi) <= 0, nil
	default:
		return false, fmt.Errorf("unsupported filter op %q", n.op)
	}
}

func attrEqual(a, b types.AttributeValue) bool {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		if !ok {
			return false
		}
		ad, errA := decimal.NewFromString(av.Value)
		bd, errB := decimal.NewFromString(bv.Value)
		return errA == nil && errB == nil && ad.Equal(bd)
	case *types.AttributeValueMemberBOOL:
		bv, ok := b.(*types.AttributeValueMemberBOOL)
		return ok && av.Value == bv.Value
	default:
		return false
	}
}

func attrCompare(a, b types.AttributeValue) int {
	if an, ok := a.(*types.AttributeValueMemberN); ok {
		if bn, ok := b.(*types.AttributeValueMemberN); ok {
			ad, _ := decimal.NewFromString(an.Value)
			bd, _ := decimal.NewFromString(bn.Value)
			return ad.Cmp(bd)
		}
	}
	as, aok := a.(*types.AttributeValueMemberS)
	bs, bok := b.(*types.AttributeValueMemberS)
	if aok && bok {
		return strings.Compare(as.Value, bs.Value)
	}
	return strings.Compare(attrKey(a), attrKey(b))
}
