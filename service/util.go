package service

func truth(value *bool, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	return *value, nil
}
