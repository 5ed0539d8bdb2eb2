package chrome

import (
	"testing"

	"github.com/grafana/sobek"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDOM is just enough of a document for the injection scripts.
const fakeDOM = `
const makeElement = (tag) => ({
	tagName: tag.toUpperCase(),
	id: '',
	textContent: '',
	attrs: {},
	isConnected: true,
	computed: '16px',
	style: {
		props: {},
		setProperty(k, v) { this.props[k] = v; },
		removeProperty(k) { delete this.props[k]; },
	},
	hasAttribute(k) { return k in this.attrs; },
	getAttribute(k) { return k in this.attrs ? this.attrs[k] : null; },
	setAttribute(k, v) { this.attrs[k] = String(v); },
	removeAttribute(k) { delete this.attrs[k]; },
	remove() {
		const c = this.parent.children;
		c.splice(c.indexOf(this), 1);
		this.parent = null;
	},
});
const document = {
	head: {
		children: [],
		appendChild(el) { this.children.push(el); el.parent = this; },
	},
	getElementById(id) { return this.head.children.find((e) => e.id === id) || null; },
	createElement: makeElement,
	all: [],
	querySelectorAll(sel) {
		const m = /^\[(.+)\]$/.exec(sel);
		return this.all.filter((e) => !m || m[1] in e.attrs);
	},
};
const window = { getComputedStyle: (el) => ({ fontSize: el.computed }) };
`

func newVM(t *testing.T) *sobek.Runtime {
	t.Helper()
	vm := sobek.New()
	_, err := vm.RunString(fakeDOM)
	require.NoError(t, err)
	return vm
}

// compile turns a script into a callable the way Rod wraps it.
func compile(t *testing.T, vm *sobek.Runtime, name string) sobek.Callable {
	t.Helper()
	src := script(name)
	require.NotEmpty(t, src, name)

	v, err := vm.RunString("(function () { return (" + src + ").apply(this, arguments); })")
	require.NoError(t, err, name)
	fn, ok := sobek.AssertFunction(v)
	require.True(t, ok, name)
	return fn
}

func TestScripts_AllCompile(t *testing.T) {
	vm := newVM(t)
	for name := range scripts {
		compile(t, vm, name)
	}
	assert.Len(t, scripts, 8)
}

func TestScripts_UpsertStyleReplacesText(t *testing.T) {
	vm := newVM(t)
	upsert := compile(t, vm, scriptUpsertStyle)

	for _, css := range []string{"a{}", "b{}"} {
		_, err := upsert(sobek.Undefined(), vm.ToValue("sitestyle-font"), vm.ToValue(css))
		require.NoError(t, err)
	}

	count, err := vm.RunString(`document.head.children.length`)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.ToInteger())

	text, err := vm.RunString(`document.getElementById('sitestyle-font').textContent`)
	require.NoError(t, err)
	assert.Equal(t, "b{}", text.String())
}

func TestScripts_UpsertStyleRejectsForeignElement(t *testing.T) {
	vm := newVM(t)
	_, err := vm.RunString(`const div = makeElement('div'); div.id = 'taken'; document.head.appendChild(div);`)
	require.NoError(t, err)

	_, err = compile(t, vm, scriptUpsertStyle)(sobek.Undefined(), vm.ToValue("taken"), vm.ToValue("x{}"))
	assert.Error(t, err)
}

func TestScripts_RemoveStyle(t *testing.T) {
	vm := newVM(t)
	upsert := compile(t, vm, scriptUpsertStyle)
	remove := compile(t, vm, scriptRemoveStyle)

	_, err := upsert(sobek.Undefined(), vm.ToValue("s"), vm.ToValue("x{}"))
	require.NoError(t, err)
	_, err = remove(sobek.Undefined(), vm.ToValue("s"))
	require.NoError(t, err)
	_, err = remove(sobek.Undefined(), vm.ToValue("s"))
	require.NoError(t, err, "removing twice is a no-op")

	count, err := vm.RunString(`document.head.children.length`)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count.ToInteger())
}

func eval(t *testing.T, vm *sobek.Runtime, expr string) sobek.Value {
	t.Helper()
	v, err := vm.RunString(expr)
	require.NoError(t, err, expr)
	return v
}

func TestScripts_ElementScripts(t *testing.T) {
	vm := newVM(t)
	el := eval(t, vm, `var el = makeElement('p'); el`)

	size, err := compile(t, vm, scriptComputedFontSize)(el)
	require.NoError(t, err)
	assert.Equal(t, "16px", size.String())

	setSize := compile(t, vm, scriptSetFontSize)
	_, err = setSize(el, vm.ToValue("19px"))
	require.NoError(t, err)
	assert.Equal(t, "19px", eval(t, vm, `el.style.props['font-size']`).String())

	_, err = setSize(el, vm.ToValue(""))
	require.NoError(t, err)
	assert.True(t, eval(t, vm, `!('font-size' in el.style.props)`).ToBoolean())

	_, err = compile(t, vm, scriptSetAttribute)(el, vm.ToValue("data-x"), vm.ToValue("16px"))
	require.NoError(t, err)
	assert.Equal(t, "16px", eval(t, vm, `el.attrs['data-x']`).String())

	_, err = compile(t, vm, scriptRemoveAttribute)(el, vm.ToValue("data-x"))
	require.NoError(t, err)
	assert.True(t, eval(t, vm, `!('data-x' in el.attrs)`).ToBoolean())
}

func TestScripts_ComputedFontSizeOfDetachedElementIsEmpty(t *testing.T) {
	vm := newVM(t)
	el, err := vm.RunString(`const d = makeElement('p'); d.isConnected = false; d`)
	require.NoError(t, err)

	size, err := compile(t, vm, scriptComputedFontSize)(el)
	require.NoError(t, err)
	assert.Equal(t, "", size.String())
}

func walkResult(t *testing.T, vm *sobek.Runtime, v sobek.Value) (marked, styled, skipped int64) {
	t.Helper()
	obj := v.ToObject(vm)
	return obj.Get("marked").ToInteger(), obj.Get("styled").ToInteger(), obj.Get("skipped").ToInteger()
}

const walkPage = `
const p = makeElement('p');
const div = makeElement('div'); div.computed = '20px';
const odd = makeElement('span'); odd.computed = 'calc(1em + 2px)';
const gone = makeElement('i'); gone.isConnected = false;
document.all.push(p, div, odd, gone);
`

func TestScripts_ApplyFontSizeDeltaWalksDocumentOnce(t *testing.T) {
	vm := newVM(t)
	eval(t, vm, walkPage)
	apply := compile(t, vm, scriptApplyFontSizeDelta)
	const attr = "data-sitestyle-original-font-size"

	res, err := apply(sobek.Undefined(), vm.ToValue(attr), vm.ToValue(3))
	require.NoError(t, err)
	marked, styled, skipped := walkResult(t, vm, res)
	assert.Equal(t, int64(3), marked)
	assert.Equal(t, int64(2), styled)
	assert.Equal(t, int64(2), skipped, "unresolved and detached elements are skipped")
	assert.Equal(t, "19px", eval(t, vm, `p.style.props['font-size']`).String())
	assert.Equal(t, "23px", eval(t, vm, `div.style.props['font-size']`).String())
	assert.True(t, eval(t, vm, `!('font-size' in odd.style.props)`).ToBoolean())
	assert.True(t, eval(t, vm, `!('`+attr+`' in gone.attrs)`).ToBoolean())

	// The baseline survives the shift, so repeating never compounds.
	eval(t, vm, `p.computed = '19px'`)
	res, err = apply(sobek.Undefined(), vm.ToValue(attr), vm.ToValue(3))
	require.NoError(t, err)
	marked, _, _ = walkResult(t, vm, res)
	assert.Equal(t, int64(0), marked)
	assert.Equal(t, "16px", eval(t, vm, `p.attrs['`+attr+`']`).String())
	assert.Equal(t, "19px", eval(t, vm, `p.style.props['font-size']`).String())

	_, err = apply(sobek.Undefined(), vm.ToValue(attr), vm.ToValue(-20))
	require.NoError(t, err)
	assert.Equal(t, "0px", eval(t, vm, `p.style.props['font-size']`).String())
}

func TestScripts_ResetFontSizeDeltaRestoresBaselines(t *testing.T) {
	vm := newVM(t)
	eval(t, vm, walkPage)
	const attr = "data-sitestyle-original-font-size"

	_, err := compile(t, vm, scriptApplyFontSizeDelta)(sobek.Undefined(), vm.ToValue(attr), vm.ToValue(2))
	require.NoError(t, err)

	res, err := compile(t, vm, scriptResetFontSizeDelta)(sobek.Undefined(), vm.ToValue(attr))
	require.NoError(t, err)
	_, styled, skipped := walkResult(t, vm, res)
	assert.Equal(t, int64(3), styled)
	assert.Equal(t, int64(0), skipped)

	assert.Equal(t, "16px", eval(t, vm, `p.style.props['font-size']`).String())
	assert.Equal(t, "20px", eval(t, vm, `div.style.props['font-size']`).String())
	assert.Equal(t, int64(0), eval(t, vm, `document.all.filter((e) => '`+attr+`' in e.attrs).length`).ToInteger())
}

func TestScripts_WalkScriptsSkipThrowingElements(t *testing.T) {
	vm := newVM(t)
	eval(t, vm, walkPage)
	eval(t, vm, `p.setAttribute = () => { throw new Error('denied'); }`)
	const attr = "data-sitestyle-original-font-size"

	res, err := compile(t, vm, scriptApplyFontSizeDelta)(sobek.Undefined(), vm.ToValue(attr), vm.ToValue(1))
	require.NoError(t, err)
	marked, styled, _ := walkResult(t, vm, res)
	assert.Equal(t, int64(2), marked)
	assert.Equal(t, int64(1), styled)
	assert.Equal(t, "21px", eval(t, vm, `div.style.props['font-size']`).String())
}
