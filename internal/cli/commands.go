package cli

import (
	"fmt"
	"strings"

	"github.com/kbravh/dawgo"
)

func runContains(path string, args []string, req request) ([]string, error) {
	key, err := requireArg(args, "key")
	if err != nil {
		return nil, err
	}

	switch req.format {
	case "", "dawg":
		d, err := dawgo.Open(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		ok, err := d.Contains(key)
		return []string{fmt.Sprint(ok)}, err
	case "completion":
		d, err := dawgo.OpenCompletion(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		ok, err := d.Contains(key)
		return []string{fmt.Sprint(ok)}, err
	case "bytes":
		d, err := dawgo.OpenBytes(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		ok, err := d.Contains(key)
		return []string{fmt.Sprint(ok)}, err
	case "record":
		d, err := dawgo.OpenRecord(path, req.recordFormat)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		ok, err := d.Contains(key)
		return []string{fmt.Sprint(ok)}, err
	case "int":
		d, err := dawgo.OpenInt(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		ok, err := d.Contains(key)
		return []string{fmt.Sprint(ok)}, err
	case "intcompletion":
		d, err := dawgo.OpenIntCompletion(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		ok, err := d.Contains(key)
		return []string{fmt.Sprint(ok)}, err
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, req.format)
	}
}

func runGet(path string, args []string, req request) ([]string, error) {
	key, err := requireArg(args, "key")
	if err != nil {
		return nil, err
	}

	switch req.format {
	case "int":
		d, err := dawgo.OpenInt(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		v, err := d.Find(key)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprint(v)}, nil
	case "intcompletion":
		d, err := dawgo.OpenIntCompletion(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		v, err := d.Find(key)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprint(v)}, nil
	case "bytes":
		d, err := dawgo.OpenBytes(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		values, err := d.Get(key)
		if err != nil {
			return nil, err
		}
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = string(v)
		}
		return out, nil
	case "record":
		d, err := dawgo.OpenRecord(path, req.recordFormat)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		records, err := d.Get(key)
		if err != nil {
			return nil, err
		}
		out := make([]string, len(records))
		for i, r := range records {
			out[i] = formatRecord(r)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q (find/get needs a value-bearing format)", errUnknownFormat, req.format)
	}
}

func runPrefixes(path string, args []string, req request) ([]string, error) {
	key, err := requireArg(args, "key")
	if err != nil {
		return nil, err
	}

	switch req.format {
	case "", "completion":
		d, err := dawgo.OpenCompletion(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		return d.Prefixes(key)
	case "intcompletion":
		d, err := dawgo.OpenIntCompletion(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		return d.Prefixes(key)
	default:
		return nil, fmt.Errorf("%w: %q (prefixes needs an ordered-completion format)", errUnknownFormat, req.format)
	}
}

func runKeys(path string, args []string, req request) ([]string, error) {
	var prefix string
	if len(args) > 0 {
		prefix = args[0]
	}

	switch req.format {
	case "", "completion":
		d, err := dawgo.OpenCompletion(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		return d.Keys(prefix)
	case "bytes":
		d, err := dawgo.OpenBytes(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		return d.Keys(prefix)
	case "record":
		d, err := dawgo.OpenRecord(path, req.recordFormat)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		return d.Keys(prefix)
	case "intcompletion":
		d, err := dawgo.OpenIntCompletion(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		return d.Keys(prefix)
	default:
		return nil, fmt.Errorf("%w: %q (keys needs an ordered-completion format)", errUnknownFormat, req.format)
	}
}

func runItems(path string, args []string, req request) ([]string, error) {
	var prefix string
	if len(args) > 0 {
		prefix = args[0]
	}

	switch req.format {
	case "bytes":
		d, err := dawgo.OpenBytes(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		items, err := d.Items(prefix)
		if err != nil {
			return nil, err
		}
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = fmt.Sprintf("%s\t%s", it.Key, it.Value)
		}
		return out, nil
	case "record":
		d, err := dawgo.OpenRecord(path, req.recordFormat)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		items, err := d.Items(prefix)
		if err != nil {
			return nil, err
		}
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = fmt.Sprintf("%s\t%s", it.Key, formatRecord(it.Record))
		}
		return out, nil
	case "intcompletion":
		d, err := dawgo.OpenIntCompletion(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		items, err := d.Items(prefix)
		if err != nil {
			return nil, err
		}
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = fmt.Sprintf("%s\t%d", it.Key, it.Value)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q (items needs a payload-bearing completion format)", errUnknownFormat, req.format)
	}
}

func runSimilar(path string, args []string, req request) ([]string, error) {
	key, err := requireArg(args, "key")
	if err != nil {
		return nil, err
	}

	switch req.format {
	case "", "dawg":
		d, err := dawgo.Open(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		return d.SimilarKeys(key, req.table)
	case "int":
		d, err := dawgo.OpenInt(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		return d.SimilarKeys(key, req.table)
	case "bytes":
		d, err := dawgo.OpenBytes(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		return d.SimilarKeys(key, req.table)
	case "record":
		d, err := dawgo.OpenRecord(path, req.recordFormat)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		return d.SimilarKeys(key, req.table)
	default:
		return nil, fmt.Errorf("%w: %q (similar needs a DAWG, IntDAWG, BytesDAWG, or RecordDAWG format)", errUnknownFormat, req.format)
	}
}

func runDump(path string, req request) ([]string, error) {
	return runKeys(path, nil, req)
}

func formatRecord(r []int64) string {
	parts := make([]string, len(r))
	for i, v := range r {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}
